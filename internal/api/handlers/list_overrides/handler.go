package list_overrides

import (
	"errors"
	"net/http"
	"time"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
)

const (
	msgInvalidBusinessID = "invalid business id"
	msgInvalidPeriod     = "invalid period"
	msgMissingActor      = "authorization required"
	msgBusinessNotFound  = "business not found"
	msgForbidden         = "access denied"
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

// Handle GET /api/v1/businesses/{businessId}/availability/overrides
// Query params: from, to (YYYY-MM-DD, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability/overrides - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/availability/overrides - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	from, to, err := ParsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"), time.Now())
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/availability/overrides - Invalid period: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod, err.Error())
		return
	}

	result, err := h.service.ListBusinessOverrides(r.Context(), actor, businessID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/availability/overrides - Invalid period: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod, err.Error())

		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/availability/overrides - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/availability/overrides - Access denied: business_id=%s, user_id=%s",
				businessID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /businesses/{id}/availability/overrides - Failed to list overrides: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/availability/overrides - Overrides retrieved successfully: business_id=%s, count=%d",
		businessID, len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}
