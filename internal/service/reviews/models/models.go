package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrEmptyPatch возвращается, когда в запросе нет изменений
var ErrEmptyPatch = errors.New("nothing to update")

// Request модели

// CreateReviewRequest отзыв клиента о выполненной работе
type CreateReviewRequest struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Body   string `json:"body" validate:"max=4000"`
}

// Validate проверяет оценку и длину текста
func (r *CreateReviewRequest) Validate() error {
	r.Body = strings.TrimSpace(r.Body)
	return validate.Struct(r)
}

// UpdateReviewRequest модерация отзыва и ответ владельца компании
type UpdateReviewRequest struct {
	Hidden        *bool   `json:"hidden,omitempty"`
	OwnerResponse *string `json:"ownerResponse,omitempty" validate:"omitempty,max=4000"`
}

// Validate проверяет, что в запросе есть изменения
func (r *UpdateReviewRequest) Validate() error {
	if r.Hidden == nil && r.OwnerResponse == nil {
		return ErrEmptyPatch
	}
	return validate.Struct(r)
}

// Response модели

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"bookingId"`
	BusinessID    uuid.UUID  `json:"businessId"`
	CustomerID    uuid.UUID  `json:"customerId"`
	Rating        int        `json:"rating"`
	Body          string     `json:"body"`
	Hidden        bool       `json:"hidden"`
	OwnerResponse *string    `json:"ownerResponse,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// FromDomainReview конвертирует domain модель в DTO
func FromDomainReview(rv *domain.Review) *ReviewResponse {
	if rv == nil {
		return nil
	}
	return &ReviewResponse{
		ID:            rv.ID,
		BookingID:     rv.BookingID,
		BusinessID:    rv.BusinessID,
		CustomerID:    rv.CustomerID,
		Rating:        rv.Rating,
		Body:          rv.Body,
		Hidden:        rv.Hidden,
		OwnerResponse: rv.OwnerResponse,
		RespondedAt:   rv.RespondedAt,
		CreatedAt:     rv.CreatedAt,
		UpdatedAt:     rv.UpdatedAt,
	}
}
