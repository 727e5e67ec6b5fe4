package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	getAvailableSlots "github.com/LomaCotta/haulers-app-sub001/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "invalid business id"
	msgMissingDates      = "start and end query parameters are required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgInvalidRange      = "invalid date range"
	msgRangeTooLong      = "date range is too long"
	msgBusinessNotFound  = "business not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/availability/slots
// Query params: start, end (required, YYYY-MM-DD, включительно)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability/slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /businesses/{id}/availability/slots - Missing dates: business_id=%s", businessID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/availability/slots - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrRangeTooLong):
			h.logger.Warn("GET /businesses/{id}/availability/slots - Range too long: business_id=%s, start=%s, end=%s",
				businessID, startStr, endStr)
			handlers.RespondBadRequest(w, msgRangeTooLong, err.Error())

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/availability/slots - Invalid range: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidRange, err.Error())

		default:
			h.logger.Error("GET /businesses/{id}/availability/slots - Failed to get slots: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/availability/slots - Slots retrieved successfully: business_id=%s, slots_count=%d",
		businessID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
