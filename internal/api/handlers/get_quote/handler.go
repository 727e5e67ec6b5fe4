package get_quote

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgMissingActor     = "authorization required"
	msgBookingNotFound  = "booking not found"
	msgQuoteNotFound    = "no quote for this booking"
	msgForbidden        = "access denied"
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

// Handle GET /api/v1/bookings/{bookingId}/quote
// Возвращает последнее предложение. Чтение клиентом отмечает его просмотренным.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/quote - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/quote - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	quote, err := h.service.GetCurrent(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, quotes.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/quote - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, quotes.ErrQuoteNotFound):
			h.logger.Warn("GET /bookings/{id}/quote - Quote not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgQuoteNotFound)

		case errors.Is(err, quotes.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/quote - Access denied: booking_id=%s, user_id=%s", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/quote - Failed to get quote: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/quote - Quote retrieved successfully: booking_id=%s, quote_id=%s, status=%s",
		bookingID, quote.ID, quote.Status)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
