package update_invoice

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
)

const (
	msgInvalidInvoiceID   = "invalid invoice id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInvoice     = "invalid invoice update"
	msgMissingActor       = "authorization required"
	msgNotFound           = "invoice not found"
	msgForbidden          = "only the business owner or an admin can edit invoices"
	msgNotEditable        = "only draft invoices can be edited"
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

// Handle PATCH /api/v1/invoices/{invoiceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := handlers.PathUUID(r, "invoiceId")
	if err != nil {
		h.logger.Warn("PATCH /invoices/{id} - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /invoices/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.UpdateInvoiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /invoices/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), actor, invoiceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("PATCH /invoices/{id} - Invoice not found: invoice_id=%s", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("PATCH /invoices/{id} - Access denied: invoice_id=%s, user_id=%s", invoiceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, invoices.ErrInvoiceNotEditable):
			h.logger.Warn("PATCH /invoices/{id} - Not editable: invoice_id=%s", invoiceID)
			handlers.RespondBadRequest(w, msgNotEditable)

		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("PATCH /invoices/{id} - Invalid input: invoice_id=%s, error=%v", invoiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInvoice, err.Error())

		default:
			h.logger.Error("PATCH /invoices/{id} - Failed to update invoice: invoice_id=%s, error=%v", invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /invoices/{id} - Invoice updated successfully: invoice_id=%s, total=%d",
		invoiceID, result.TotalCents)
	handlers.RespondJSON(w, http.StatusOK, result)
}
