package rental

import (
	"errors"
	"time"

	"github.com/DavidOvMu23/Viniloteca/model"
)

// MaxRentalDays caps how long a single record can be rented out.
const MaxRentalDays = 15

// errors used by controllers

type ErrCode string

const (
	ErrInvalidRange     ErrCode = "INVALID_RANGE"
	ErrDurationExceeded ErrCode = "DURATION_EXCEEDED"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrNotOwner         ErrCode = "NOT_OWNER"
	ErrNotFound         ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// ValidatePeriod checks a proposed rental window against the duration policy.
// The duration comparison is exact: maxDays is inclusive, one second over is
// rejected. Pure, no I/O.
func ValidatePeriod(rentedAt, dueAt time.Time, maxDays int) error {
	if dueAt.Before(rentedAt) {
		return makeErr(ErrInvalidRange)
	}
	if dueAt.Sub(rentedAt) > time.Duration(maxDays)*24*time.Hour {
		return makeErr(ErrDurationExceeded)
	}
	return nil
}

// DeriveStatus resolves a rental's state from its timestamps. RETURNED is
// terminal; OVERDUE is a consequence of elapsed time, not a stored transition.
func DeriveStatus(r model.Rental, now time.Time) model.RentalStatus {
	if r.ReturnedAt != nil {
		return model.RentalReturned
	}
	if r.DueAt.Before(now) {
		return model.RentalOverdue
	}
	return model.RentalActive
}

// MarkReturned stamps the return time on an unreturned record. Calling it on
// an already-returned record leaves the record untouched and signals
// ErrAlreadyReturned; callers treat that as idempotent success so a duplicate
// return from two sessions cannot corrupt state.
func MarkReturned(r model.Rental, now time.Time) (model.Rental, error) {
	if r.ReturnedAt != nil {
		return r, makeErr(ErrAlreadyReturned)
	}
	t := now
	r.ReturnedAt = &t
	return r, nil
}

// IsOverdue reports whether an unreturned rental is past due as of now.
func IsOverdue(r model.Rental, now time.Time) bool {
	return r.ReturnedAt == nil && r.DueAt.Before(now)
}

// ReturnedLate reports whether a returned rental came back past its due date.
// Distinct from overdue: late records still report status RETURNED.
func ReturnedLate(r model.Rental) bool {
	return r.ReturnedAt != nil && r.ReturnedAt.After(r.DueAt)
}
