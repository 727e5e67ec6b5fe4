package domain

import (
	"time"

	"github.com/google/uuid"
)

// EditRequestStatus of a customer's request to change a booking.
type EditRequestStatus string

const (
	EditRequestPending  EditRequestStatus = "pending"
	EditRequestApproved EditRequestStatus = "approved"
	EditRequestRejected EditRequestStatus = "rejected"
)

// EditRequest is a customer-proposed change to a booking, decided by the business.
type EditRequest struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	RequestedBy      uuid.UUID
	Status           EditRequestStatus
	RequestedChanges map[string]interface{}
	DecidedBy        *uuid.UUID
	DecidedAt        *time.Time
	RejectionReason  *string
	CreatedAt        time.Time
}

// IsPending reports whether the request still awaits a decision.
func (r *EditRequest) IsPending() bool {
	return r.Status == EditRequestPending
}
