package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	getAvailableSlots "github.com/LomaCotta/haulers-app-sub001/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Date            string `json:"date"` // "2025-10-15"
	Slot            string `json:"slot"` // "morning" | "afternoon"
	Available       bool   `json:"available"`
	MaxJobs         int    `json:"maxJobs"`
	CurrentBookings int    `json:"currentBookings"`
	Blocked         bool   `json:"blocked"`
	TooSoon         bool   `json:"tooSoon"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BusinessID uuid.UUID      `json:"businessId"`
	StartDate  string         `json:"startDate"`
	EndDate    string         `json:"endDate"`
	Slots      []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case из URL и query параметров
func ToUseCaseRequest(businessID uuid.UUID, startStr, endStr string) (*getAvailableSlots.Request, error) {
	start, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		BusinessID: resp.BusinessID,
		StartDate:  resp.StartDate.Format(domain.DateFormat),
		EndDate:    resp.EndDate.Format(domain.DateFormat),
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Date:            s.Date.Format(domain.DateFormat),
			Slot:            string(s.Slot),
			Available:       s.Available,
			MaxJobs:         s.MaxJobs,
			CurrentBookings: s.CurrentBookings,
			Blocked:         s.Blocked,
			TooSoon:         s.TooSoon,
		})
	}
	return out
}
