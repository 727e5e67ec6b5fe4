package create_invoice

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInvoice     = "invalid invoice"
	msgMissingActor       = "authorization required"
	msgBookingNotFound    = "booking not found"
	msgForbidden          = "only the business owner or an admin can create invoices"
	msgNotInvoiceable     = "booking cannot be invoiced in its current status"
	msgAlreadyInvoiced    = "booking already has an invoice"
)

type Handler struct {
	service InvoiceService
	logger  Logger
}

func NewHandler(service InvoiceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/invoices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /invoices - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.CreateInvoiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("POST /invoices - Invalid input: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInvoice, err.Error())

		case errors.Is(err, invoices.ErrBookingNotFound):
			h.logger.Warn("POST /invoices - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("POST /invoices - Access denied: booking_id=%s, user_id=%s", req.BookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, invoices.ErrNotInvoiceable):
			h.logger.Warn("POST /invoices - Not invoiceable: booking_id=%s", req.BookingID)
			handlers.RespondBadRequest(w, msgNotInvoiceable)

		case errors.Is(err, invoices.ErrAlreadyInvoiced):
			h.logger.Warn("POST /invoices - Already invoiced: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyInvoiced)

		default:
			h.logger.Error("POST /invoices - Failed to create invoice: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices - Invoice created successfully: invoice_id=%s, booking_id=%s", result.ID, req.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
