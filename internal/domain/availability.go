package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/pkg/types"
)

// SlotKind is a half-day booking capacity unit.
type SlotKind string

const (
	SlotMorning   SlotKind = "morning"
	SlotAfternoon SlotKind = "afternoon"
)

// SlotKinds in display order.
var SlotKinds = []SlotKind{SlotMorning, SlotAfternoon}

func (k SlotKind) Valid() bool {
	return k == SlotMorning || k == SlotAfternoon
}

// NominalStart is the fixed start used for advance-notice checks (UTC).
func (k SlotKind) NominalStart() types.TimeString {
	if k == SlotAfternoon {
		return types.TimeString(DefaultAfternoonStart)
	}
	return types.TimeString(DefaultMorningStart)
}

// AvailabilityRule is the weekly capacity template of a business for one weekday.
type AvailabilityRule struct {
	ID             uuid.UUID
	BusinessID     uuid.UUID
	Weekday        time.Weekday
	MorningJobs    int
	AfternoonJobs  int
	MorningStart   types.TimeString
	MorningEnd     types.TimeString
	AfternoonStart types.TimeString
	AfternoonEnd   types.TimeString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DefaultRule builds the rule used when a business has none for the weekday.
func DefaultRule(businessID uuid.UUID, weekday time.Weekday) AvailabilityRule {
	return AvailabilityRule{
		BusinessID:     businessID,
		Weekday:        weekday,
		MorningJobs:    DefaultMorningJobs,
		AfternoonJobs:  DefaultAfternoonJobs,
		MorningStart:   types.TimeString(DefaultMorningStart),
		MorningEnd:     types.TimeString(DefaultMorningEnd),
		AfternoonStart: types.TimeString(DefaultAfternoonStart),
		AfternoonEnd:   types.TimeString(DefaultAfternoonEnd),
	}
}

// MaxJobs returns the capacity of the given slot.
func (r AvailabilityRule) MaxJobs(kind SlotKind) int {
	if kind == SlotAfternoon {
		return r.AfternoonJobs
	}
	return r.MorningJobs
}

// Window returns the configured start and end of the given slot.
func (r AvailabilityRule) Window(kind SlotKind) (types.TimeString, types.TimeString) {
	if kind == SlotAfternoon {
		return r.AfternoonStart, r.AfternoonEnd
	}
	return r.MorningStart, r.MorningEnd
}

// OverrideKind distinguishes blocking overrides from extra-capacity overrides.
type OverrideKind string

const (
	OverrideBlock OverrideKind = "block"
	OverrideExtra OverrideKind = "extra"
)

// OverrideScope is the part of the day an override applies to.
type OverrideScope string

const (
	ScopeFullDay   OverrideScope = "full_day"
	ScopeMorning   OverrideScope = "morning"
	ScopeAfternoon OverrideScope = "afternoon"
)

// Covers reports whether the scope applies to the given slot.
func (s OverrideScope) Covers(kind SlotKind) bool {
	switch s {
	case ScopeFullDay:
		return true
	case ScopeMorning:
		return kind == SlotMorning
	case ScopeAfternoon:
		return kind == SlotAfternoon
	}
	return false
}

// AvailabilityOverride is a date-specific exception layered on the weekly rule.
type AvailabilityOverride struct {
	ID                uuid.UUID
	BusinessID        uuid.UUID
	Date              time.Time
	Kind              OverrideKind
	Scope             OverrideScope
	MaxConcurrentJobs *int
	Reason            *string
	CreatedAt         time.Time
}

// DayOverrides is the resolved set of overrides for one calendar date.
type DayOverrides struct {
	FullDayBlocked   bool
	MorningBlocked   bool
	AfternoonBlocked bool
	Extras           []AvailabilityOverride
}

// Blocked reports whether the slot is removed by a block override.
func (d DayOverrides) Blocked(kind SlotKind) bool {
	if d.FullDayBlocked {
		return true
	}
	if kind == SlotAfternoon {
		return d.AfternoonBlocked
	}
	return d.MorningBlocked
}

// ExtraCapacity returns the largest max_concurrent_jobs of extras covering the slot.
func (d DayOverrides) ExtraCapacity(kind SlotKind) (int, bool) {
	best, found := 0, false
	for _, o := range d.Extras {
		if o.MaxConcurrentJobs == nil || !o.Scope.Covers(kind) {
			continue
		}
		if !found || *o.MaxConcurrentJobs > best {
			best, found = *o.MaxConcurrentJobs, true
		}
	}
	return best, found
}

// Commitment is one real-world job occupying a slot, from either booking source.
type Commitment struct {
	Date      time.Time
	Slot      SlotKind
	BookingID *uuid.UUID
	JobID     *uuid.UUID
	Source    string
}

// SlotAvailability is the computed availability of a half-day slot.
type SlotAvailability struct {
	Date            time.Time
	Slot            SlotKind
	Available       bool
	MaxJobs         int
	CurrentBookings int
	Blocked         bool
	TooSoon         bool
}

// DateOnly truncates t to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
