package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/ptr"
)

func TestMergedCommitmentsDedup(t *testing.T) {
	date := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	bookingA, bookingB := uuid.New(), uuid.New()

	jobs := staticCommitments{list: []domain.Commitment{
		// the same real-world job as bookingA
		{Date: date, Slot: domain.SlotMorning, BookingID: &bookingA, JobID: ptr.Ptr(uuid.New()), Source: "scheduled_jobs"},
		// a job without a booking row
		{Date: date, Slot: domain.SlotMorning, JobID: ptr.Ptr(uuid.New()), Source: "scheduled_jobs"},
		// bookingB was moved; the job still sits on the old slot
		{Date: date, Slot: domain.SlotAfternoon, BookingID: &bookingB, JobID: ptr.Ptr(uuid.New()), Source: "scheduled_jobs"},
	}}
	bookings := staticCommitments{list: []domain.Commitment{
		{Date: date, Slot: domain.SlotMorning, BookingID: &bookingA, Source: "bookings"},
		{Date: date.AddDate(0, 0, 1), Slot: domain.SlotMorning, BookingID: &bookingB, Source: "bookings"},
	}}

	merged, err := NewMergedCommitments(jobs, bookings).ListCommitments(context.Background(), uuid.New(), date, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, merged, 4)

	counts := countBySlot(merged)
	assert.Equal(t, 2, counts[slotKey(date, domain.SlotMorning)])
	assert.Equal(t, 1, counts[slotKey(date, domain.SlotAfternoon)])
	assert.Equal(t, 1, counts[slotKey(date.AddDate(0, 0, 1), domain.SlotMorning)])
}

func TestMergedCommitmentsSkipsAnonymous(t *testing.T) {
	date := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	src := staticCommitments{list: []domain.Commitment{{Date: date, Slot: domain.SlotMorning}}}

	merged, err := NewMergedCommitments(src).ListCommitments(context.Background(), uuid.New(), date, date)
	require.NoError(t, err)
	assert.Empty(t, merged)
}

func TestMergedCommitmentsPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewMergedCommitments(staticCommitments{}, staticCommitments{err: boom}).
		ListCommitments(context.Background(), uuid.New(), time.Now(), time.Now())
	assert.ErrorIs(t, err, boom)
}
