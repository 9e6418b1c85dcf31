package coverage

import (
	"context"
	"time"
)

type StoreAPI interface {
	Create(ctx context.Context, req *CoverageRequest) (string, error)
	Get(ctx context.Context, id string) (*CoverageRequest, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]CoverageRequest, int, error)
	ActiveRequestExists(ctx context.Context, shift ShiftRef) (bool, error)
	AddCandidates(ctx context.Context, id string, candidateIDs []string, message string, sentAt time.Time) error
	RemoveCandidate(ctx context.Context, id, employeeID string) error
	UpdateStatus(ctx context.Context, id, status string) error
	// TryAccept flips the request to awaiting finalization for employeeID if
	// and only if it is still seeking coverage. Returns false when the guard
	// did not match, without reporting why.
	TryAccept(ctx context.Context, id, employeeID string, at time.Time) (bool, error)
	// MarkCovered closes the request with the chosen compensation type if and
	// only if it is awaiting finalization.
	MarkCovered(ctx context.Context, id, compensationType string) (bool, error)
}
