package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuoteStatus is the lifecycle of a quote, independent of the booking status.
type QuoteStatus string

const (
	QuoteSent     QuoteStatus = "sent"
	QuoteViewed   QuoteStatus = "viewed"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
	QuoteExpired  QuoteStatus = "expired"
)

// Quote is a priced offer attached to a booking.
type Quote struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	BusinessID  uuid.UUID
	AmountCents int64
	Status      QuoteStatus
	SentAt      *time.Time
	ViewedAt    *time.Time
	RespondedAt *time.Time
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// IsExpired reports whether the quote passed its expiry at now.
func (q *Quote) IsExpired(now time.Time) bool {
	if q.Status == QuoteExpired {
		return true
	}
	return q.ExpiresAt != nil && !now.Before(*q.ExpiresAt)
}

// Actionable reports whether a customer may still respond.
func (q *Quote) Actionable(now time.Time) bool {
	return (q.Status == QuoteSent || q.Status == QuoteViewed) && !q.IsExpired(now)
}

// QuoteDecision is the customer's answer to a quote.
type QuoteDecision string

const (
	DecisionAccept QuoteDecision = "accept"
	DecisionReject QuoteDecision = "reject"
)

func (d QuoteDecision) Valid() bool {
	return d == DecisionAccept || d == DecisionReject
}
