package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus of an invoice. Overdue is derived from the due date, never stored.
type InvoiceStatus string

const (
	InvoiceDraft         InvoiceStatus = "draft"
	InvoiceSent          InvoiceStatus = "sent"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
)

// Invoice is a financial document, optionally linked to a booking.
type Invoice struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	BookingID  *uuid.UUID
	CustomerID uuid.UUID
	Status     InvoiceStatus
	TotalCents int64
	PaidCents  int64
	DueDate    *time.Time
	Notes      *string
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BalanceCents is total minus paid.
func (i *Invoice) BalanceCents() int64 {
	return i.TotalCents - i.PaidCents
}

// IsEditable reports whether the invoice may still be changed.
func (i *Invoice) IsEditable() bool {
	return i.Status == InvoiceDraft
}

// EffectiveStatus returns overdue for unpaid sent invoices past their due date.
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.DueDate == nil || i.Status == InvoiceDraft || i.Status == InvoicePaid {
		return i.Status
	}
	if DateOnly(now).After(DateOnly(*i.DueDate)) && i.BalanceCents() > 0 {
		return InvoiceOverdue
	}
	return i.Status
}

// ApplyPayment records a payment and moves the status along sent → partially_paid → paid.
func (i *Invoice) ApplyPayment(amountCents int64) {
	i.PaidCents += amountCents
	if i.PaidCents >= i.TotalCents {
		i.Status = InvoicePaid
		return
	}
	i.Status = InvoicePartiallyPaid
}

// BatchFailureReason is the closed set of reasons a booking can fail batch invoicing.
type BatchFailureReason string

const (
	ReasonBookingNotFound  BatchFailureReason = "booking_not_found"
	ReasonNotOwned         BatchFailureReason = "not_owned"
	ReasonNotInvoiceable   BatchFailureReason = "not_invoiceable"
	ReasonAlreadyInvoiced  BatchFailureReason = "already_invoiced"
	ReasonInvalidAmount    BatchFailureReason = "invalid_amount"
	ReasonInternal         BatchFailureReason = "internal_error"
	ReasonDuplicateInBatch BatchFailureReason = "duplicate_in_batch"
	ReasonLockLost         BatchFailureReason = "lock_lost"
)

// CheckInvoiceable returns the reason the business cannot bill the booking, or "" if it can.
func CheckInvoiceable(b *Booking, businessID uuid.UUID) BatchFailureReason {
	switch {
	case b == nil:
		return ReasonBookingNotFound
	case b.BusinessID != businessID:
		return ReasonNotOwned
	case !b.IsInvoiceable():
		return ReasonNotInvoiceable
	case b.TotalPriceCents <= 0:
		return ReasonInvalidAmount
	}
	return ""
}

// NewDraftInvoice builds a draft invoice for the booking's total.
func NewDraftInvoice(b *Booking, dueDate *time.Time, notes *string) *Invoice {
	bookingID := b.ID
	return &Invoice{
		BusinessID: b.BusinessID,
		BookingID:  &bookingID,
		CustomerID: b.CustomerID,
		Status:     InvoiceDraft,
		TotalCents: b.TotalPriceCents,
		DueDate:    dueDate,
		Notes:      notes,
	}
}
