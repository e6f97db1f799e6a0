package rental

import "time"

type CreateRentalReq struct {
	DiscogsID int64     `json:"discogs_id" validate:"required,gt=0"`
	UserID    string    `json:"user_id" validate:"omitempty,uuid"` // supervisors renting on a client's behalf
	RentedAt  time.Time `json:"rented_at" validate:"required"`
	DueAt     time.Time `json:"due_at" validate:"required"`
}
