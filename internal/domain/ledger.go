package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerCategory groups platform financial records.
type LedgerCategory string

const (
	LedgerRevenue    LedgerCategory = "revenue"
	LedgerExpense    LedgerCategory = "expense"
	LedgerPayout     LedgerCategory = "payout"
	LedgerFee        LedgerCategory = "fee"
	LedgerRefund     LedgerCategory = "refund"
	LedgerAdjustment LedgerCategory = "adjustment"
)

func (c LedgerCategory) Valid() bool {
	switch c {
	case LedgerRevenue, LedgerExpense, LedgerPayout, LedgerFee, LedgerRefund, LedgerAdjustment:
		return true
	}
	return false
}

// LedgerEntry is a platform financial record for a period.
type LedgerEntry struct {
	ID          uuid.UUID
	Category    LedgerCategory
	AmountCents int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Notes       *string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}
