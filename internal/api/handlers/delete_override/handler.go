package delete_override

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
)

const (
	msgInvalidBusinessID = "invalid business id"
	msgInvalidOverrideID = "invalid override id"
	msgMissingActor      = "authorization required"
	msgBusinessNotFound  = "business not found"
	msgOverrideNotFound  = "override not found"
	msgForbidden         = "only the business owner or an admin can change availability"
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

// Handle DELETE /api/v1/businesses/{businessId}/availability/overrides/{overrideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/availability/overrides/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	overrideID, err := handlers.PathUUID(r, "overrideId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/availability/overrides/{id} - Invalid override ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{id}/availability/overrides/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), actor, businessID, overrideID); err != nil {
		switch {
		case errors.Is(err, availability.ErrOverrideNotFound):
			h.logger.Warn("DELETE /businesses/{id}/availability/overrides/{id} - Override not found: override_id=%s", overrideID)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{id}/availability/overrides/{id} - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/availability/overrides/{id} - Access denied: business_id=%s, user_id=%s",
				businessID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{id}/availability/overrides/{id} - Failed to delete override: override_id=%s, error=%v",
				overrideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/availability/overrides/{id} - Override deleted successfully: override_id=%s", overrideID)
	w.WriteHeader(http.StatusNoContent)
}
