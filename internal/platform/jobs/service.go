// Package jobs runs best-effort side effects (notification fan-out, realtime
// broadcasts) off the request path so workflow mutations never block on them.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	JobNotifyFanout     = "notify_fanout"
	JobRealtimePublish  = "realtime_publish"
	JobOfferInvitations = "offer_invitations"
)

type Service struct {
	DB    *pgxpool.Pool
	queue chan job
}

type job struct {
	Type     string
	TargetID string
	Run      func(context.Context) (any, error)
}

func New(db *pgxpool.Pool) *Service {
	return &Service{
		DB:    db,
		queue: make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

func (s *Service) Enqueue(jobType, targetID string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, TargetID: targetID, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType, "targetId", targetID)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, targetID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, TargetID: targetID, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "targetId", j.TargetID, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.DB != nil {
		if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, target_id, status)
    VALUES ($1,$2,$3)
    RETURNING id
  `, j.Type, j.TargetID, "running").Scan(&runID); err != nil {
			slog.Warn("job run insert failed", "err", err)
		}
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	if runID != "" {
		detailsJSON, marshalErr := json.Marshal(details)
		if marshalErr != nil {
			slog.Warn("job details marshal failed", "err", marshalErr)
			detailsJSON = []byte("{}")
		}
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}
