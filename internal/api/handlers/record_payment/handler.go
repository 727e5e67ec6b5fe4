package record_payment

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
	msgInvalidAmount      = "invalid payment amount"
	msgMissingActor       = "authorization required"
	msgNotFound           = "invoice not found"
	msgForbidden          = "only the business owner or an admin can record payments"
	msgNotPayable         = "invoice is not awaiting payment"
	msgOverpayment        = "payment exceeds invoice balance"
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

// Handle POST /api/v1/invoices/{invoiceId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := handlers.PathUUID(r, "invoiceId")
	if err != nil {
		h.logger.Warn("POST /invoices/{id}/payments - Invalid invoice ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInvoiceID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /invoices/{id}/payments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), actor, invoiceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, invoices.ErrInvalidInput):
			h.logger.Warn("POST /invoices/{id}/payments - Invalid amount: invoice_id=%s, error=%v", invoiceID, err)
			handlers.RespondBadRequest(w, msgInvalidAmount, err.Error())

		case errors.Is(err, invoices.ErrInvoiceNotFound):
			h.logger.Warn("POST /invoices/{id}/payments - Invoice not found: invoice_id=%s", invoiceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, invoices.ErrAccessDenied):
			h.logger.Warn("POST /invoices/{id}/payments - Access denied: invoice_id=%s, user_id=%s", invoiceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, invoices.ErrInvalidTransition):
			h.logger.Warn("POST /invoices/{id}/payments - Not payable: invoice_id=%s", invoiceID)
			handlers.RespondConflict(w, msgNotPayable)

		case errors.Is(err, invoices.ErrOverpayment):
			h.logger.Warn("POST /invoices/{id}/payments - Overpayment: invoice_id=%s, amount=%s", invoiceID, req.Amount)
			handlers.RespondBadRequest(w, msgOverpayment)

		default:
			h.logger.Error("POST /invoices/{id}/payments - Failed to record payment: invoice_id=%s, error=%v", invoiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices/{id}/payments - Payment recorded: invoice_id=%s, status=%s, balance=%d",
		invoiceID, result.Status, result.BalanceCents)
	handlers.RespondJSON(w, http.StatusOK, result)
}
