package update_review

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "invalid review id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidUpdate      = "invalid review update"
	msgMissingActor       = "authorization required"
	msgNotFound           = "review not found"
	msgForbidden          = "access denied"
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

// Handle PATCH /api/v1/reviews/{reviewId}
// Скрытие отзыва (владелец компании, администратор) и ответ владельца
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID, err := handlers.PathUUID(r, "reviewId")
	if err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reviews/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.UpdateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, reviewID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("PATCH /reviews/{id} - Invalid input: review_id=%s, error=%v", reviewID, err)
			handlers.RespondBadRequest(w, msgInvalidUpdate, err.Error())

		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PATCH /reviews/{id} - Review not found: review_id=%s", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("PATCH /reviews/{id} - Access denied: review_id=%s, user_id=%s", reviewID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /reviews/{id} - Failed to update review: review_id=%s, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reviews/{id} - Review updated: review_id=%s, hidden=%t", reviewID, result.Hidden)
	handlers.RespondJSON(w, http.StatusOK, result)
}
