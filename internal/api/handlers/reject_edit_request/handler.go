package reject_edit_request

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests/models"
)

const (
	msgInvalidRequestID   = "invalid edit request id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidReason      = "invalid rejection reason"
	msgMissingActor       = "authorization required"
	msgNotFound           = "edit request not found"
	msgForbidden          = "only the business owner or an admin can decide edit requests"
	msgAlreadyDecided     = "edit request already decided"
	msgRejected           = "edit request rejection was refused"
)

type Handler struct {
	service EditRequestService
	logger  Logger
}

func NewHandler(service EditRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/edit-requests/{requestId}/reject
// Тело запроса опционально: {"reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathUUID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /edit-requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /edit-requests/{id}/reject - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.RejectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /edit-requests/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Reject(r.Context(), actor, requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, editrequests.ErrInvalidInput):
			h.logger.Warn("POST /edit-requests/{id}/reject - Invalid input: request_id=%s, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidReason, err.Error())

		case errors.Is(err, editrequests.ErrEditRequestNotFound):
			h.logger.Warn("POST /edit-requests/{id}/reject - Not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editrequests.ErrAccessDenied):
			h.logger.Warn("POST /edit-requests/{id}/reject - Access denied: request_id=%s, user_id=%s", requestID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editrequests.ErrAlreadyDecided):
			h.logger.Warn("POST /edit-requests/{id}/reject - Already decided: request_id=%s", requestID)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, editrequests.ErrRejectedByProcedure):
			h.logger.Warn("POST /edit-requests/{id}/reject - Rejected by procedure: request_id=%s, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgRejected, handlers.ProcedureMessage(err, editrequests.ErrRejectedByProcedure))

		default:
			h.logger.Error("POST /edit-requests/{id}/reject - Failed to reject: request_id=%s, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /edit-requests/{id}/reject - Edit request rejected: request_id=%s, booking_id=%s, user_id=%s",
		requestID, result.BookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
