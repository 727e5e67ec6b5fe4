package batch_create_invoices

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	batchCreateInvoices "github.com/LomaCotta/haulers-app-sub001/internal/usecase/batch_create_invoices"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBatch       = "invalid invoice batch"
	msgMissingActor       = "authorization required"
	msgBusinessNotFound   = "business not found"
	msgForbidden          = "only the business owner or an admin can create invoices"
	msgBatchInProgress    = "an invoice batch is already running for this business"
)

type Handler struct {
	useCase BatchCreateInvoicesUseCase
	logger  Logger
}

func NewHandler(useCase BatchCreateInvoicesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/invoices/batch
// Ответ 200 содержит succeeded[] и failed[] с кодом причины по каждому бронированию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /invoices/batch - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req BatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /invoices/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /invoices/batch - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBatch, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, batchCreateInvoices.ErrInvalidInput):
			h.logger.Warn("POST /invoices/batch - Invalid input: business_id=%s, error=%v", useCaseReq.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidBatch, err.Error())

		case errors.Is(err, batchCreateInvoices.ErrBusinessNotFound):
			h.logger.Warn("POST /invoices/batch - Business not found: business_id=%s", useCaseReq.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, batchCreateInvoices.ErrAccessDenied):
			h.logger.Warn("POST /invoices/batch - Access denied: business_id=%s, user_id=%s",
				useCaseReq.BusinessID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, batchCreateInvoices.ErrBatchInProgress):
			h.logger.Warn("POST /invoices/batch - Batch in progress: business_id=%s", useCaseReq.BusinessID)
			handlers.RespondConflict(w, msgBatchInProgress)

		default:
			h.logger.Error("POST /invoices/batch - Failed to create invoices: business_id=%s, error=%v",
				useCaseReq.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /invoices/batch - Batch finished: business_id=%s, succeeded=%d, failed=%d",
		useCaseReq.BusinessID, len(result.Succeeded), len(result.Failed))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
