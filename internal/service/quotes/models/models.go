package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// MaxNoteLength максимальная длина комментария к ответу
const MaxNoteLength = 1000

var (
	// ErrInvalidDecision возвращается при неизвестном решении
	ErrInvalidDecision = errors.New("decision must be accept or reject")

	// ErrNoteTooLong возвращается, когда комментарий слишком длинный
	ErrNoteTooLong = errors.New("note is too long")
)

// RespondRequest ответ клиента на коммерческое предложение
type RespondRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note,omitempty"`
}

// Validate проверяет запрос и возвращает решение
func (r *RespondRequest) Validate() (domain.QuoteDecision, error) {
	decision := domain.QuoteDecision(strings.ToLower(strings.TrimSpace(r.Decision)))
	if !decision.Valid() {
		return "", ErrInvalidDecision
	}
	if len(r.Note) > MaxNoteLength {
		return "", ErrNoteTooLong
	}
	return decision, nil
}

// QuoteResponse ответ с данными предложения
type QuoteResponse struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"bookingId"`
	BusinessID  uuid.UUID  `json:"businessId"`
	AmountCents int64      `json:"amountCents"`
	Status      string     `json:"status"`
	Actionable  bool       `json:"actionable"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	ViewedAt    *time.Time `json:"viewedAt,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RespondResponse результат ответа на предложение
type RespondResponse struct {
	QuoteID  uuid.UUID `json:"quoteId"`
	Decision string    `json:"decision"`
	Message  string    `json:"message,omitempty"`
}

// FromDomainQuote конвертирует domain модель в DTO. Просроченное предложение
// отдается со статусом expired, даже если в хранилище оно еще sent/viewed.
func FromDomainQuote(q *domain.Quote, now time.Time) *QuoteResponse {
	if q == nil {
		return nil
	}

	status := q.Status
	if q.IsExpired(now) {
		status = domain.QuoteExpired
	}

	return &QuoteResponse{
		ID:          q.ID,
		BookingID:   q.BookingID,
		BusinessID:  q.BusinessID,
		AmountCents: q.AmountCents,
		Status:      string(status),
		Actionable:  q.Actionable(now),
		SentAt:      q.SentAt,
		ViewedAt:    q.ViewedAt,
		RespondedAt: q.RespondedAt,
		ExpiresAt:   q.ExpiresAt,
		CreatedAt:   q.CreatedAt,
	}
}
