package domain

import "github.com/google/uuid"

// PricingTier is a rate card entry keyed by crew size.
type PricingTier struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	TeamSize        int
	HourlyRateCents *int64
	BaseRateCents   *int64
	MinHours        int
}

// HourlyRate returns the tier's hourly rate. A tier with only a base rate and
// minimum hours yields base/minHours. ok is false when the tier has no usable rate.
func (t PricingTier) HourlyRate() (int64, bool) {
	if t.HourlyRateCents != nil && *t.HourlyRateCents > 0 {
		return *t.HourlyRateCents, true
	}
	if t.BaseRateCents != nil && *t.BaseRateCents > 0 && t.MinHours > 0 {
		return *t.BaseRateCents / int64(t.MinHours), true
	}
	return 0, false
}

// RateSource tells where the hourly rate of a calculation came from.
type RateSource string

const (
	RateSourceExactTier   RateSource = "tier"
	RateSourceNearestTier RateSource = "nearest_tier"
	RateSourceStored      RateSource = "stored"
)

// PriceBreakdown is the itemized price embedded in a booking's service details.
// All amounts are integer cents.
type PriceBreakdown struct {
	MoverTeam       int   `json:"mover_team"`
	HourlyRateCents int64 `json:"hourly_rate_cents"`
	BillableHours   int   `json:"billable_hours"`

	BaseCents        int64 `json:"base_cents"`
	AdditionalCents  int64 `json:"additional_cents"`
	DestinationCents int64 `json:"destination_cents"`
	HeavyItemsCents  int64 `json:"heavy_items_cents"`
	PackingCents     int64 `json:"packing_cents"`
	StairsCents      int64 `json:"stairs_cents"`
	StorageCents     int64 `json:"storage_cents"`
	InsuranceCents   int64 `json:"insurance_cents"`

	TotalCents int64 `json:"total_cents"`
}

// ComponentsSum adds up every itemized component.
func (p PriceBreakdown) ComponentsSum() int64 {
	return p.BaseCents + p.AdditionalCents + p.DestinationCents + p.HeavyItemsCents +
		p.PackingCents + p.StairsCents + p.StorageCents + p.InsuranceCents
}

// Consistent reports whether the total equals the sum of its components.
func (p PriceBreakdown) Consistent() bool {
	return p.TotalCents == p.ComponentsSum()
}

// ExtrasCents is everything on top of the base price.
func (p PriceBreakdown) ExtrasCents() int64 {
	return p.TotalCents - p.BaseCents
}
