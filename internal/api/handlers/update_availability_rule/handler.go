package update_availability_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers/get_availability_rule"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
)

const (
	msgInvalidBusinessID  = "invalid business id"
	msgInvalidWeekday     = "invalid weekday, expected 0..6"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidRule        = "invalid availability rule"
	msgMissingActor       = "authorization required"
	msgBusinessNotFound   = "business not found"
	msgForbidden          = "only the business owner or an admin can change availability"
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

// Handle PUT /api/v1/businesses/{businessId}/availability/rules/{weekday}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	weekday, err := get_availability_rule.ParseWeekday(mux.Vars(r)["weekday"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Invalid weekday: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekday)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.RuleInput
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateRule(r.Context(), actor, businessID, weekday, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Validation failed: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidRule, err.Error())

		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/availability/rules/{weekday} - Access denied: business_id=%s, user_id=%s",
				businessID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /businesses/{id}/availability/rules/{weekday} - Failed to update rule: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/availability/rules/{weekday} - Rule updated successfully: business_id=%s, weekday=%d",
		businessID, weekday)
	handlers.RespondJSON(w, http.StatusOK, result)
}
