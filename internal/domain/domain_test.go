package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/LomaCotta/haulers-app-sub001/pkg/ptr"
)

func TestBookingStatusCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want BookingStatus
	}{
		{"pending", StatusRequested},
		{"CONFIRMED", StatusAccepted},
		{"in_progress", StatusScheduled},
		{"cancelled", StatusCanceled},
		{"quoted", StatusQuoted},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			st, ok := ParseBookingStatus(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, st.Canonical())
		})
	}

	_, ok := ParseBookingStatus("archived")
	assert.False(t, ok)
}

func TestBookingStatusCommits(t *testing.T) {
	assert.True(t, StatusPending.Commits())
	assert.True(t, StatusConfirmed.Commits())
	assert.True(t, StatusInProgress.Commits())
	assert.True(t, StatusScheduled.Commits())
	assert.False(t, StatusCompleted.Commits())
	assert.False(t, StatusCancelled.Commits())
	assert.False(t, StatusQuoted.Commits())
}

func TestBookingStatusSpellings(t *testing.T) {
	assert.ElementsMatch(t, []BookingStatus{StatusCanceled, StatusCancelled}, StatusCancelled.Spellings())
	assert.ElementsMatch(t, []BookingStatus{StatusRequested, StatusPending}, StatusRequested.Spellings())
	assert.Equal(t, []BookingStatus{StatusQuoted}, StatusQuoted.Spellings())
}

func TestBookingIsInvoiceable(t *testing.T) {
	for _, st := range []BookingStatus{StatusAccepted, StatusConfirmed, StatusScheduled, StatusInProgress, StatusCompleted} {
		assert.True(t, (&Booking{Status: st}).IsInvoiceable(), st)
	}
	for _, st := range []BookingStatus{StatusRequested, StatusPending, StatusQuoted, StatusCanceled, StatusCancelled} {
		assert.False(t, (&Booking{Status: st}).IsInvoiceable(), st)
	}
}

func TestBookingIsLocked(t *testing.T) {
	b := &Booking{PaymentStatus: PaymentPartiallyPaid}
	assert.False(t, b.IsLocked())

	b.PaymentStatus = PaymentPaid
	assert.True(t, b.IsLocked())
}

func TestActorCanManage(t *testing.T) {
	owner := uuid.New()
	biz := &Business{ID: uuid.New(), OwnerID: owner}

	assert.True(t, Actor{UserID: owner, Role: RoleBusiness}.CanManage(biz))
	assert.True(t, Actor{UserID: uuid.New(), Role: RoleAdmin}.CanManage(biz))
	assert.False(t, Actor{UserID: uuid.New(), Role: RoleBusiness}.CanManage(biz))
	assert.False(t, Actor{Role: RoleCustomer}.CanManage(biz))
}

func TestPricingTierHourlyRate(t *testing.T) {
	rate, ok := PricingTier{HourlyRateCents: ptr.Ptr(int64(18000))}.HourlyRate()
	assert.True(t, ok)
	assert.Equal(t, int64(18000), rate)

	rate, ok = PricingTier{BaseRateCents: ptr.Ptr(int64(45000)), MinHours: 3}.HourlyRate()
	assert.True(t, ok)
	assert.Equal(t, int64(15000), rate)

	_, ok = PricingTier{BaseRateCents: ptr.Ptr(int64(45000))}.HourlyRate()
	assert.False(t, ok)
}

func TestDayOverrides(t *testing.T) {
	d := DayOverrides{MorningBlocked: true}
	assert.True(t, d.Blocked(SlotMorning))
	assert.False(t, d.Blocked(SlotAfternoon))

	d = DayOverrides{FullDayBlocked: true}
	assert.True(t, d.Blocked(SlotMorning))
	assert.True(t, d.Blocked(SlotAfternoon))

	d = DayOverrides{Extras: []AvailabilityOverride{
		{Kind: OverrideExtra, Scope: ScopeFullDay, MaxConcurrentJobs: ptr.Ptr(4)},
		{Kind: OverrideExtra, Scope: ScopeAfternoon, MaxConcurrentJobs: ptr.Ptr(6)},
	}}
	got, ok := d.ExtraCapacity(SlotMorning)
	assert.True(t, ok)
	assert.Equal(t, 4, got)
	got, _ = d.ExtraCapacity(SlotAfternoon)
	assert.Equal(t, 6, got)
}

func TestInvoicePayments(t *testing.T) {
	inv := &Invoice{Status: InvoiceSent, TotalCents: 10000}

	inv.ApplyPayment(4000)
	assert.Equal(t, InvoicePartiallyPaid, inv.Status)
	assert.Equal(t, int64(6000), inv.BalanceCents())

	inv.ApplyPayment(6000)
	assert.Equal(t, InvoicePaid, inv.Status)
	assert.Equal(t, int64(0), inv.BalanceCents())
}

func TestInvoiceEffectiveStatus(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inv := &Invoice{Status: InvoiceSent, TotalCents: 5000, DueDate: &due}

	assert.Equal(t, InvoiceSent, inv.EffectiveStatus(due.Add(20*time.Hour)))
	assert.Equal(t, InvoiceOverdue, inv.EffectiveStatus(due.AddDate(0, 0, 1)))

	inv.Status = InvoiceDraft
	assert.Equal(t, InvoiceDraft, inv.EffectiveStatus(due.AddDate(0, 0, 5)))
}

func TestCheckInvoiceable(t *testing.T) {
	businessID := uuid.New()
	b := &Booking{ID: uuid.New(), BusinessID: businessID, Status: StatusCompleted, TotalPriceCents: 86200}

	assert.Equal(t, BatchFailureReason(""), CheckInvoiceable(b, businessID))
	assert.Equal(t, ReasonBookingNotFound, CheckInvoiceable(nil, businessID))
	assert.Equal(t, ReasonNotOwned, CheckInvoiceable(b, uuid.New()))

	b.Status = StatusQuoted
	assert.Equal(t, ReasonNotInvoiceable, CheckInvoiceable(b, businessID))

	b.Status = StatusAccepted
	b.TotalPriceCents = 0
	assert.Equal(t, ReasonInvalidAmount, CheckInvoiceable(b, businessID))

	b.TotalPriceCents = 86200
	inv := NewDraftInvoice(b, nil, nil)
	assert.Equal(t, InvoiceDraft, inv.Status)
	assert.Equal(t, int64(86200), inv.TotalCents)
	assert.Equal(t, b.ID, *inv.BookingID)
}

func TestPriceBreakdownConsistent(t *testing.T) {
	p := PriceBreakdown{BaseCents: 54000, PackingCents: 29700, StairsCents: 2500, TotalCents: 86200}
	assert.True(t, p.Consistent())
	assert.Equal(t, int64(32200), p.ExtrasCents())

	p.TotalCents++
	assert.False(t, p.Consistent())
}
