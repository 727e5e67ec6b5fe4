package preview_pricing

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/pricing"
)

const (
	msgInvalidBusinessID  = "invalid business id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDetails     = "invalid moving details"
	msgBusinessNotFound   = "business not found"
	msgNoRate             = "no pricing rate configured for the requested team size"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/pricing/preview
// Публичный endpoint - расчет без сохранения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathUUID(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/pricing/preview - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var body map[string]interface{}
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /businesses/{id}/pricing/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	details, err := ToMovingDetails(body)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/pricing/preview - Invalid details: business_id=%s, error=%v", businessID, err)
		handlers.RespondBadRequest(w, msgInvalidDetails, err.Error())
		return
	}

	result, err := h.service.Preview(r.Context(), businessID, details)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/pricing/preview - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, pricing.ErrNoRate):
			h.logger.Warn("POST /businesses/{id}/pricing/preview - No rate: business_id=%s, team_size=%d",
				businessID, details.TeamSize)
			handlers.RespondBadRequest(w, msgNoRate)

		case errors.Is(err, pricing.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/pricing/preview - Invalid input: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDetails, err.Error())

		default:
			h.logger.Error("POST /businesses/{id}/pricing/preview - Failed to calculate price: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/pricing/preview - Price calculated: business_id=%s, total=%d, source=%s",
		businessID, result.Breakdown.TotalCents, result.RateSource)
	handlers.RespondJSON(w, http.StatusOK, FromPricingResult(result))
}
