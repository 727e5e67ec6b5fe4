package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// MergedCommitments объединяет несколько источников занятости в один.
// Запланированная работа, ссылающаяся на бронирование в той же дате и слоте,
// считается одним обязательством с этим бронированием.
type MergedCommitments struct {
	sources []CommitmentSource
}

// NewMergedCommitments создает объединенный источник
func NewMergedCommitments(sources ...CommitmentSource) *MergedCommitments {
	return &MergedCommitments{sources: sources}
}

type commitmentKey struct {
	date string
	slot domain.SlotKind
	id   uuid.UUID
	job  bool
}

// ListCommitments возвращает обязательства всех источников без дублей
func (m *MergedCommitments) ListCommitments(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.Commitment, error) {
	seen := make(map[commitmentKey]struct{})
	merged := make([]domain.Commitment, 0)

	for _, src := range m.sources {
		list, err := src.ListCommitments(ctx, businessID, from, to)
		if err != nil {
			return nil, err
		}

		for _, c := range list {
			key, ok := canonicalKey(c)
			if !ok {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, c)
		}
	}
	return merged, nil
}

// canonicalKey строит ключ (дата, слот, бронирование).
// Работы без бронирования идентифицируются собственным ID.
func canonicalKey(c domain.Commitment) (commitmentKey, bool) {
	key := commitmentKey{
		date: domain.DateOnly(c.Date).Format(domain.DateFormat),
		slot: c.Slot,
	}
	switch {
	case c.BookingID != nil:
		key.id = *c.BookingID
	case c.JobID != nil:
		key.id = *c.JobID
		key.job = true
	default:
		return commitmentKey{}, false
	}
	return key, true
}

// countBySlot считает обязательства по (дата, слот)
func countBySlot(commitments []domain.Commitment) map[string]int {
	counts := make(map[string]int, len(commitments))
	for _, c := range commitments {
		if !c.Slot.Valid() {
			continue
		}
		counts[slotKey(c.Date, c.Slot)]++
	}
	return counts
}

func slotKey(date time.Time, slot domain.SlotKind) string {
	return domain.DateOnly(date).Format(domain.DateFormat) + "/" + string(slot)
}
