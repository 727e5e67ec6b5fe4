package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a completed booking.
type Review struct {
	ID            uuid.UUID
	BookingID     uuid.UUID
	BusinessID    uuid.UUID
	CustomerID    uuid.UUID
	Rating        int
	Body          string
	Hidden        bool
	OwnerResponse *string
	RespondedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
