package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

var (
	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidStatus возвращается при неизвестном статусе бронирования
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPeriod возвращается, когда конец периода раньше начала
	ErrInvalidPeriod = errors.New("end date is before start date")
)

// Максимальный размер страницы выдачи
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Request модели

// ListBookingsRequest фильтры списка бронирований
type ListBookingsRequest struct {
	StartDate *string // "2026-05-01"
	EndDate   *string
	Status    *string
	Limit     int
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{Limit: DefaultLimit}
	if r == nil {
		return filter, nil
	}

	if r.Limit > 0 {
		filter.Limit = r.Limit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}

	if r.StartDate != nil {
		from, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.From = &from
	}
	if r.EndDate != nil {
		to, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *r.Status)
		}
		filter.Statuses = status.Spellings()
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	BusinessID     uuid.UUID `json:"businessId"`
	CustomerID     uuid.UUID `json:"customerId"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	Locked         bool      `json:"locked"`
	RequestedDate  string    `json:"requestedDate"` // "2026-05-04"
	RequestedSlot  string    `json:"requestedSlot"`
	ServiceAddress string    `json:"serviceAddress"`

	TeamSize             int   `json:"teamSize"`
	HourlyRateCents      int64 `json:"hourlyRateCents"`
	EstimatedHours       int   `json:"estimatedHours"`
	BasePriceCents       int64 `json:"basePriceCents"`
	AdditionalPriceCents int64 `json:"additionalPriceCents"`
	TotalPriceCents      int64 `json:"totalPriceCents"`

	ServiceDetails map[string]interface{} `json:"serviceDetails"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	details := b.ServiceDetails
	if details == nil {
		details = map[string]interface{}{}
	}

	return &BookingResponse{
		ID:                   b.ID,
		BusinessID:           b.BusinessID,
		CustomerID:           b.CustomerID,
		Status:               string(b.Status.Canonical()),
		PaymentStatus:        string(b.PaymentStatus),
		Locked:               b.IsLocked(),
		RequestedDate:        b.RequestedDate.Format(domain.DateFormat),
		RequestedSlot:        string(b.RequestedSlot),
		ServiceAddress:       b.ServiceAddress,
		TeamSize:             b.TeamSize,
		HourlyRateCents:      b.HourlyRateCents,
		EstimatedHours:       b.EstimatedHours,
		BasePriceCents:       b.BasePriceCents,
		AdditionalPriceCents: b.AdditionalPriceCents,
		TotalPriceCents:      b.TotalPriceCents,
		ServiceDetails:       details,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
