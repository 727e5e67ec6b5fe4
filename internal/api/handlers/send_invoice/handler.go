package send_invoice

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices"
)

const (
	msgInvalidInvoiceID = "invalid invoice id"
	msgMissingActor     = "authorization required"
	msgNotFound         = "invoice not found"
	msgForbidden        = "only the business owner or an admin can send invoices"
	msgAlreadySent      = "only draft invoices can be sent"
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

// Handle POST /api/v1/invoices/{invoiceId}/send
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := handlers.PathUUID(r, "invoiceId")
	if err != nil {
		h.logger.Warn("POST /invoices/{id}/send - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /invoices/{id}/send - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	result, err := h.service.Send(r.Context(), actor, invoiceID)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("POST /invoices/{id}/send - Invoice not found: invoice_id=%s", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("POST /invoices/{id}/send - Access denied: invoice_id=%s, user_id=%s", invoiceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, invoices.ErrInvalidTransition):
			h.logger.Warn("POST /invoices/{id}/send - Invalid transition: invoice_id=%s", invoiceID)
			handlers.RespondConflict(w, msgAlreadySent)

		default:
			h.logger.Error("POST /invoices/{id}/send - Failed to send invoice: invoice_id=%s, error=%v", invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices/{id}/send - Invoice sent: invoice_id=%s", invoiceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
