package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking.
// Two vocabularies exist in stored data; both are accepted and mapped onto one lifecycle.
type BookingStatus string

const (
	StatusRequested BookingStatus = "requested"
	StatusQuoted    BookingStatus = "quoted"
	StatusAccepted  BookingStatus = "accepted"
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"

	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCancelled  BookingStatus = "cancelled"
)

// ParseBookingStatus accepts any known spelling, case-insensitively.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	st := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusRequested, StatusQuoted, StatusAccepted, StatusScheduled, StatusCompleted, StatusCanceled,
		StatusPending, StatusConfirmed, StatusInProgress, StatusCancelled:
		return st, true
	}
	return "", false
}

// Canonical maps the legacy vocabulary onto the booking lifecycle.
func (s BookingStatus) Canonical() BookingStatus {
	switch s {
	case StatusPending:
		return StatusRequested
	case StatusConfirmed:
		return StatusAccepted
	case StatusInProgress:
		return StatusScheduled
	case StatusCancelled:
		return StatusCanceled
	}
	return s
}

// Commits reports whether a booking in this status occupies capacity in a slot.
func (s BookingStatus) Commits() bool {
	for _, st := range CommittingStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Spellings returns every stored spelling of the same lifecycle state.
func (s BookingStatus) Spellings() []BookingStatus {
	canonical := s.Canonical()
	out := []BookingStatus{canonical}
	for _, legacy := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCancelled} {
		if legacy.Canonical() == canonical {
			out = append(out, legacy)
		}
	}
	return out
}

// PaymentStatus of a booking. Paid is terminal for this service.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
)

// Booking is a service request between a customer and a business.
type Booking struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	CustomerID    uuid.UUID
	Status        BookingStatus
	PaymentStatus PaymentStatus

	RequestedDate  time.Time
	RequestedSlot  SlotKind
	ServiceAddress string

	TeamSize             int
	HourlyRateCents      int64
	EstimatedHours       int
	BasePriceCents       int64
	AdditionalPriceCents int64
	TotalPriceCents      int64

	// ServiceDetails is the stored JSON document; see ServiceDetails for its typed view.
	ServiceDetails map[string]interface{}

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLocked reports whether payment has been captured. Locked bookings reject non-admin edits.
func (b *Booking) IsLocked() bool {
	return b.PaymentStatus == PaymentPaid
}

func (b *Booking) IsCompleted() bool {
	return b.Status.Canonical() == StatusCompleted
}

// IsInvoiceable reports whether the booking reached a state that can be billed.
func (b *Booking) IsInvoiceable() bool {
	switch b.Status.Canonical() {
	case StatusAccepted, StatusScheduled, StatusCompleted:
		return true
	}
	return false
}

// PricesConsistent reports whether base + additional equals the stored total.
func (b *Booking) PricesConsistent() bool {
	return b.BasePriceCents+b.AdditionalPriceCents == b.TotalPriceCents
}

// BookingFilter narrows booking listings. Nil fields are not applied.
type BookingFilter struct {
	BusinessID *uuid.UUID
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Statuses   []BookingStatus
	Limit      int
}
