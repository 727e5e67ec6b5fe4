package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business is a service provider listed on the marketplace.
type Business struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	MinNoticeHours int

	// Per-business pricing overrides; nil means the platform default applies.
	PackingRoomRateCents  *int64
	StairsFlightRateCents *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoticeHours returns the advance-notice window. An unset value falls back to
// fallback, and a non-positive fallback to DefaultMinNoticeHours.
func (b *Business) NoticeHours(fallback int) int {
	if b != nil && b.MinNoticeHours > 0 {
		return b.MinNoticeHours
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultMinNoticeHours
}

// PricingSettings are the per-business inputs of the price calculation.
type PricingSettings struct {
	PackingRoomRateCents  int64
	StairsFlightRateCents int64
}

// Settings resolves pricing settings against the given defaults.
func (b *Business) Settings(defaults PricingSettings) PricingSettings {
	s := defaults
	if b == nil {
		return s
	}
	if b.PackingRoomRateCents != nil && *b.PackingRoomRateCents >= 0 {
		s.PackingRoomRateCents = *b.PackingRoomRateCents
	}
	if b.StairsFlightRateCents != nil && *b.StairsFlightRateCents >= 0 {
		s.StairsFlightRateCents = *b.StairsFlightRateCents
	}
	return s
}
