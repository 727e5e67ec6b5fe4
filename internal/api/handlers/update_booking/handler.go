package update_booking

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	updateBooking "github.com/LomaCotta/haulers-app-sub001/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid requestedDate, expected YYYY-MM-DD"
	msgMissingActor       = "authorization required"
	msgNotFound           = "booking not found"
	msgForbidden          = "only the business owner or an admin can edit this booking"
	msgLocked             = "Cannot edit booking after payment has been completed"
	msgInvalidInput       = "invalid booking update"
	msgNoRate             = "no pricing rate configured for the requested team size"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Пользователь берется только из контекста запроса (JWT)
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing actor: booking_id=%s", bookingID)
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req PatchBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actor)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%s, user_id=%s, role=%s",
				bookingID, actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrBookingLocked):
			h.logger.Warn("PATCH /bookings/{id} - Booking is paid: booking_id=%s, user_id=%s", bookingID, actor.UserID)
			handlers.RespondBadRequest(w, msgLocked)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id} - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput, err.Error())

		case errors.Is(err, updateBooking.ErrNoRate):
			h.logger.Warn("PATCH /bookings/{id} - No pricing rate: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgNoRate)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%s, user_id=%s, total=%d",
		bookingID, actor.UserID, result.Booking.TotalPriceCents)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
