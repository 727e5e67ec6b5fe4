package respond_quote

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes/models"
)

const (
	msgInvalidQuoteID     = "invalid quote id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDecision    = "decision must be accept or reject"
	msgMissingActor       = "authorization required"
	msgQuoteNotFound      = "quote not found"
	msgForbidden          = "only the customer of the booking can respond to its quote"
	msgNotActionable      = "quote can no longer be answered"
	msgRejected           = "quote response was rejected"
)

type Handler struct {
	service QuoteService
	logger  Logger
}

func NewHandler(service QuoteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes/{quoteId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	quoteID, err := handlers.PathUUID(r, "quoteId")
	if err != nil {
		h.logger.Warn("POST /quotes/{id}/respond - Invalid quote ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuoteID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /quotes/{id}/respond - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.RespondRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Respond(r.Context(), actor, quoteID, &req)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrInvalidInput):
			h.logger.Warn("POST /quotes/{id}/respond - Invalid input: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondBadRequest(w, msgInvalidDecision, err.Error())

		case errors.Is(err, quotes.ErrQuoteNotFound), errors.Is(err, quotes.ErrBookingNotFound):
			h.logger.Warn("POST /quotes/{id}/respond - Quote not found: quote_id=%s", quoteID)
			handlers.RespondNotFound(w, msgQuoteNotFound)

		case errors.Is(err, quotes.ErrAccessDenied):
			h.logger.Warn("POST /quotes/{id}/respond - Access denied: quote_id=%s, user_id=%s", quoteID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, quotes.ErrQuoteNotActionable):
			h.logger.Warn("POST /quotes/{id}/respond - Quote not actionable: quote_id=%s", quoteID)
			handlers.RespondConflict(w, msgNotActionable)

		case errors.Is(err, quotes.ErrRejectedByProcedure):
			h.logger.Warn("POST /quotes/{id}/respond - Rejected by procedure: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondBadRequest(w, msgRejected, handlers.ProcedureMessage(err, quotes.ErrRejectedByProcedure))

		default:
			h.logger.Error("POST /quotes/{id}/respond - Failed to respond: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes/{id}/respond - Quote answered: quote_id=%s, decision=%s, user_id=%s",
		quoteID, result.Decision, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
