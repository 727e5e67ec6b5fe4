package create_override

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
)

const (
	msgInvalidBusinessID  = "invalid business id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidOverride    = "invalid availability override"
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

// Handle POST /api/v1/businesses/{businessId}/availability/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/availability/overrides - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/availability/overrides - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.OverrideInput
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/availability/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateOverride(r.Context(), actor, businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/availability/overrides - Validation failed: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidOverride, err.Error())

		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/availability/overrides - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/availability/overrides - Access denied: business_id=%s, user_id=%s",
				businessID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /businesses/{id}/availability/overrides - Failed to create override: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/availability/overrides - Override created successfully: business_id=%s, override_id=%s",
		businessID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
