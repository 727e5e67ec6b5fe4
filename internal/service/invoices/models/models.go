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

// MaxNotesLength максимальная длина примечания к счету
const MaxNotesLength = 2000

var validate = validator.New(validator.WithRequiredStructEnabled())

var (
	// ErrInvalidDueDate возвращается при некорректной дате оплаты
	ErrInvalidDueDate = errors.New("invalid due date, expected YYYY-MM-DD")

	// ErrZeroAmount возвращается при нулевой сумме
	ErrZeroAmount = errors.New("amount must be greater than zero")

	// ErrEmptyPatch возвращается, когда в запросе нет изменений
	ErrEmptyPatch = errors.New("nothing to update")
)

// Request модели

// CreateInvoiceRequest запрос на создание счета по бронированию
type CreateInvoiceRequest struct {
	BookingID string  `json:"bookingId" validate:"required,uuid"`
	DueDate   *string `json:"dueDate,omitempty"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Validate проверяет запрос и возвращает ID бронирования и дату оплаты
func (r *CreateInvoiceRequest) Validate() (uuid.UUID, *time.Time, error) {
	if err := validate.Struct(r); err != nil {
		return uuid.Nil, nil, err
	}
	bookingID, err := uuid.Parse(r.BookingID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("bookingId: %v", err)
	}
	due, err := ParseDueDate(r.DueDate)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return bookingID, due, nil
}

// UpdateInvoiceRequest частичное изменение черновика счета. Суммы в долларах: "1250.00".
type UpdateInvoiceRequest struct {
	Total   *string `json:"total,omitempty"`
	DueDate *string `json:"dueDate,omitempty"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ApplyTo проверяет запрос и применяет изменения к счету
func (r *UpdateInvoiceRequest) ApplyTo(inv *domain.Invoice) error {
	if r.Total == nil && r.DueDate == nil && r.Notes == nil {
		return ErrEmptyPatch
	}
	if err := validate.Struct(r); err != nil {
		return err
	}

	if r.Total != nil {
		cents, err := money.ParseDollars(*r.Total)
		if err != nil {
			return fmt.Errorf("total: %w", err)
		}
		if cents == 0 {
			return fmt.Errorf("total: %w", ErrZeroAmount)
		}
		inv.TotalCents = cents
	}
	if r.DueDate != nil {
		due, err := ParseDueDate(r.DueDate)
		if err != nil {
			return err
		}
		inv.DueDate = due
	}
	if r.Notes != nil {
		notes := strings.TrimSpace(*r.Notes)
		if notes == "" {
			inv.Notes = nil
		} else {
			inv.Notes = &notes
		}
	}
	return nil
}

// PaymentRequest запрос на регистрацию платежа. Сумма в долларах: "125.50".
type PaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// AmountCents проверяет запрос и возвращает сумму в центах
func (r *PaymentRequest) AmountCents() (int64, error) {
	if err := validate.Struct(r); err != nil {
		return 0, err
	}
	cents, err := money.ParseDollars(r.Amount)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, ErrZeroAmount
	}
	return cents, nil
}

// ParseDueDate разбирает дату оплаты. Пустая строка означает "без срока".
func ParseDueDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	due, err := time.Parse(domain.DateFormat, strings.TrimSpace(*s))
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &due, nil
}

// Response модели

// InvoiceResponse ответ с данными счета
type InvoiceResponse struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"businessId"`
	BookingID    *uuid.UUID `json:"bookingId,omitempty"`
	CustomerID   uuid.UUID  `json:"customerId"`
	Status       string     `json:"status"`
	TotalCents   int64      `json:"totalCents"`
	PaidCents    int64      `json:"paidCents"`
	BalanceCents int64      `json:"balanceCents"`
	Total        string     `json:"total"`   // "$1,250.00"
	Balance      string     `json:"balance"` // "$250.00"
	DueDate      *string    `json:"dueDate,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FromDomainInvoice конвертирует domain модель в DTO. Статус overdue вычисляется на момент now.
func FromDomainInvoice(inv *domain.Invoice, now time.Time) *InvoiceResponse {
	if inv == nil {
		return nil
	}

	resp := &InvoiceResponse{
		ID:           inv.ID,
		BusinessID:   inv.BusinessID,
		BookingID:    inv.BookingID,
		CustomerID:   inv.CustomerID,
		Status:       string(inv.EffectiveStatus(now)),
		TotalCents:   inv.TotalCents,
		PaidCents:    inv.PaidCents,
		BalanceCents: inv.BalanceCents(),
		Total:        money.Format(inv.TotalCents),
		Balance:      money.Format(inv.BalanceCents()),
		Notes:        inv.Notes,
		SentAt:       inv.SentAt,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	if inv.DueDate != nil {
		due := inv.DueDate.Format(domain.DateFormat)
		resp.DueDate = &due
	}
	return resp
}
