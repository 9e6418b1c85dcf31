package coverage

import "errors"

var (
	ErrNotFound               = errors.New("coverage request not found")
	ErrDuplicateActiveRequest = errors.New("an active coverage request already exists for this shift")
	ErrInvalidState           = errors.New("coverage request is not in a valid state for this operation")
	ErrUnauthorized           = errors.New("not authorized to perform this coverage operation")
	ErrOfferTaken             = errors.New("coverage offer was already accepted by another employee")
	ErrOfferUnavailable       = errors.New("coverage offer is no longer available")
	ErrInvalidCompensation    = errors.New("invalid compensation type")
)
