package create_ledger_entry

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidEntry       = "invalid ledger entry"
	msgMissingActor       = "authorization required"
	msgForbidden          = "admin access required"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/ledger
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/ledger - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	var req models.CreateEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/ledger - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAccessDenied):
			h.logger.Warn("POST /admin/ledger - Access denied: user_id=%s, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, ledger.ErrInvalidInput):
			h.logger.Warn("POST /admin/ledger - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEntry, err.Error())

		default:
			h.logger.Error("POST /admin/ledger - Failed to create entry: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/ledger - Entry created: entry_id=%s, category=%s, amount=%d",
		result.ID, result.Category, result.AmountCents)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
