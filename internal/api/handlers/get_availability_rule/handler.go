package get_availability_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
)

const (
	msgInvalidBusinessID = "invalid business id"
	msgInvalidWeekday    = "invalid weekday, expected 0..6"
	msgBusinessNotFound  = "business not found"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/availability/rules/{weekday}
// Если правила нет, оно создается со значениями по умолчанию.
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability/rules/{weekday} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	weekday, err := ParseWeekday(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability/rules/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	result, err := h.service.GetRule(r.Context(), businessID, weekday)
	if err != nil {
		if errors.Is(err, availability.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id}/availability/rules/{weekday} - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}

		h.logger.Error("GET /businesses/{id}/availability/rules/{weekday} - Failed to get rule: business_id=%s, weekday=%d, error=%v",
			businessID, weekday, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/availability/rules/{weekday} - Rule retrieved successfully: business_id=%s, weekday=%d",
		businessID, weekday)
	handlers.RespondJSON(w, http.StatusOK, result)
}
