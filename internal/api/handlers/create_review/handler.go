package create_review

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews/models"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidReview      = "rating must be between 1 and 5"
	msgMissingActor       = "authorization required"
	msgBookingNotFound    = "booking not found"
	msgForbidden          = "only the customer of the booking can review it"
	msgNotCompleted       = "only completed bookings can be reviewed"
	msgAlreadyReviewed    = "booking already reviewed"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reviews - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reviews - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidReview, err.Error())

		case errors.Is(err, reviews.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reviews - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reviews - Access denied: booking_id=%s, user_id=%s", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrBookingNotCompleted):
			h.logger.Warn("POST /bookings/{id}/reviews - Booking not completed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgNotCompleted)

		case errors.Is(err, reviews.ErrAlreadyReviewed):
			h.logger.Warn("POST /bookings/{id}/reviews - Already reviewed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyReviewed)

		default:
			h.logger.Error("POST /bookings/{id}/reviews - Failed to create review: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reviews - Review created: review_id=%s, booking_id=%s, rating=%d",
		result.ID, bookingID, result.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
