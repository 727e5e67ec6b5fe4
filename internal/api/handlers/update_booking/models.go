package update_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/bookings/models"
	updateBooking "github.com/LomaCotta/haulers-app-sub001/internal/usecase/update_booking"
)

// PatchBookingRequest HTTP request model. Отсутствующее поле не меняется.
type PatchBookingRequest struct {
	Status         *string `json:"status,omitempty"`
	RequestedDate  *string `json:"requestedDate,omitempty"` // "2025-10-15"
	RequestedSlot  *string `json:"requestedSlot,omitempty"` // "morning" | "afternoon"
	ServiceAddress *string `json:"serviceAddress,omitempty"`
	TeamSize       *int    `json:"teamSize,omitempty"`
	// ServiceDetails частичный документ, null внутри удаляет ключ
	ServiceDetails map[string]interface{} `json:"serviceDetails,omitempty"`
}

// PatchBookingResponse HTTP response model
type PatchBookingResponse struct {
	Booking    *models.BookingResponse `json:"booking"`
	Breakdown  *domain.PriceBreakdown  `json:"breakdown,omitempty"`
	RateSource string                  `json:"rateSource,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PatchBookingRequest) ToUseCaseRequest(bookingID uuid.UUID, actor domain.Actor) (*updateBooking.Request, error) {
	patch := updateBooking.Patch{
		ServiceAddress: r.ServiceAddress,
		TeamSize:       r.TeamSize,
		ServiceDetails: r.ServiceDetails,
	}

	if r.Status != nil {
		status := domain.BookingStatus(*r.Status)
		patch.Status = &status
	}

	if r.RequestedDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.RequestedDate)
		if err != nil {
			return nil, fmt.Errorf("requestedDate: expected YYYY-MM-DD")
		}
		patch.RequestedDate = &date
	}

	if r.RequestedSlot != nil {
		slot := domain.SlotKind(*r.RequestedSlot)
		patch.RequestedSlot = &slot
	}

	return &updateBooking.Request{
		BookingID: bookingID,
		Actor:     actor,
		Patch:     patch,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateBooking.Response) *PatchBookingResponse {
	return &PatchBookingResponse{
		Booking:    models.FromDomainBooking(resp.Booking),
		Breakdown:  resp.Breakdown,
		RateSource: string(resp.RateSource),
	}
}
