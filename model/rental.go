// model/rental.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalActive   RentalStatus = "ACTIVE"
	RentalOverdue  RentalStatus = "OVERDUE"
	RentalReturned RentalStatus = "RETURNED"
)

// Rental is one loan of a catalog release to a user. Status is never stored:
// it is always derived from the timestamps, so the record cannot drift out of
// sync with its own dates.
type Rental struct {
	ID         uuid.UUID  `json:"id"`
	DiscogsID  int64      `json:"discogs_id"`
	UserID     uuid.UUID  `json:"user_id"`
	OperatorID *uuid.UUID `json:"operator_id,omitempty"`
	RentedAt   time.Time  `json:"rented_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
