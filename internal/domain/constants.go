package domain

// MaxAmountCents caps every money input of the details document ($1,000,000).
// The validate tags below repeat the literal.
const MaxAmountCents int64 = 100_000_000

// MaxPriceCents caps any computed price component and the total ($100,000,000).
const MaxPriceCents int64 = 10_000_000_000

// Team size bounds and default crew.
const (
	MinTeamSize     = 1
	MaxTeamSize     = 8
	DefaultTeamSize = 2
)

// Default pricing values in cents.
const (
	DefaultPackingRoomRateCents  int64 = 9900
	DefaultStairsFlightRateCents int64 = 2500
)

// Default weekly availability rule.
const (
	DefaultMorningJobs    = 3
	DefaultAfternoonJobs  = 2
	DefaultMorningStart   = "08:00"
	DefaultMorningEnd     = "12:00"
	DefaultAfternoonStart = "12:00"
	DefaultAfternoonEnd   = "17:00"
	MaxJobsPerSlot        = 50
)

// Advance notice and range limits.
const (
	DefaultMinNoticeHours = 24
	MaxMinNoticeHours     = 24 * 30
	MaxSlotRangeDays      = 92
)

// Review limits.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxReviewBodyLen = 4000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CommittingStatuses are the statuses that occupy slot capacity, in both vocabularies.
var CommittingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusRequested,
	StatusAccepted,
	StatusScheduled,
}

// CommittingStatusStrings returns CommittingStatuses as plain strings for query filters.
func CommittingStatusStrings() []string {
	out := make([]string, len(CommittingStatuses))
	for i, s := range CommittingStatuses {
		out[i] = string(s)
	}
	return out
}
