package get_invoice

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
	msgForbidden        = "access denied"
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

// Handle GET /api/v1/invoices/{invoiceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := handlers.PathUUID(r, "invoiceId")
	if err != nil {
		h.logger.Warn("GET /invoices/{id} - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /invoices/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	result, err := h.service.Get(r.Context(), actor, invoiceID)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("GET /invoices/{id} - Invoice not found: invoice_id=%s", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("GET /invoices/{id} - Access denied: invoice_id=%s, user_id=%s", invoiceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /invoices/{id} - Failed to get invoice: invoice_id=%s, error=%v", invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /invoices/{id} - Invoice retrieved successfully: invoice_id=%s", invoiceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
