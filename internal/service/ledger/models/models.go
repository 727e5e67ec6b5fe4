package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/money"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var (
	// ErrInvalidPeriod возвращается при некорректном периоде
	ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM-DD with start not after end")

	// ErrInvalidCategory возвращается при неизвестной категории
	ErrInvalidCategory = errors.New("invalid ledger category")
)

// Request модели

// CreateEntryRequest новая финансовая запись. Сумма в долларах: "1250.00".
type CreateEntryRequest struct {
	Category    string  `json:"category" validate:"required,oneof=revenue expense payout fee refund adjustment"`
	Amount      string  `json:"amount" validate:"required"`
	PeriodStart string  `json:"periodStart" validate:"required"`
	PeriodEnd   string  `json:"periodEnd" validate:"required"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ToDomainEntry проверяет запрос и конвертирует его в domain модель
func (r *CreateEntryRequest) ToDomainEntry(createdBy uuid.UUID) (*domain.LedgerEntry, error) {
	if err := validate.Struct(r); err != nil {
		return nil, err
	}

	amount, err := money.ParseDollars(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	start, end, err := parsePeriod(r.PeriodStart, r.PeriodEnd)
	if err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		Category:    domain.LedgerCategory(r.Category),
		AmountCents: amount,
		PeriodStart: start,
		PeriodEnd:   end,
		CreatedBy:   createdBy,
	}
	if r.Notes != nil {
		if notes := strings.TrimSpace(*r.Notes); notes != "" {
			entry.Notes = &notes
		}
	}
	return entry, nil
}

// ListEntriesRequest фильтр выборки записей за период
type ListEntriesRequest struct {
	From     string
	To       string
	Category *string
}

// ToFilter проверяет фильтр
func (r *ListEntriesRequest) ToFilter() (time.Time, time.Time, *domain.LedgerCategory, error) {
	from, to, err := parsePeriod(r.From, r.To)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	if r.Category == nil || *r.Category == "" {
		return from, to, nil, nil
	}
	category := domain.LedgerCategory(strings.ToLower(*r.Category))
	if !category.Valid() {
		return time.Time{}, time.Time{}, nil, ErrInvalidCategory
	}
	return from, to, &category, nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse(domain.DateFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	to, err := time.Parse(domain.DateFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return from, to, nil
}

// Response модели

// EntryResponse ответ с финансовой записью
type EntryResponse struct {
	ID          uuid.UUID `json:"id"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amountCents"`
	Amount      string    `json:"amount"`
	PeriodStart string    `json:"periodStart"`
	PeriodEnd   string    `json:"periodEnd"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EntryListResponse ответ со списком записей и итогами по категориям
type EntryListResponse struct {
	Entries      []EntryResponse  `json:"entries"`
	TotalsCents  map[string]int64 `json:"totalsCents"`
	EntriesCount int              `json:"entriesCount"`
}

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.LedgerEntry) *EntryResponse {
	if e == nil {
		return nil
	}
	return &EntryResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		AmountCents: e.AmountCents,
		Amount:      money.Format(e.AmountCents),
		PeriodStart: e.PeriodStart.Format(domain.DateFormat),
		PeriodEnd:   e.PeriodEnd.Format(domain.DateFormat),
		Notes:       e.Notes,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// FromDomainEntryList конвертирует список и считает суммы по категориям
func FromDomainEntryList(entries []*domain.LedgerEntry) *EntryListResponse {
	resp := &EntryListResponse{
		Entries:     make([]EntryResponse, 0, len(entries)),
		TotalsCents: make(map[string]int64),
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		resp.Entries = append(resp.Entries, *FromDomainEntry(e))
		resp.TotalsCents[string(e.Category)] += e.AmountCents
	}
	resp.EntriesCount = len(resp.Entries)
	return resp
}
