package list_ledger

import (
	"errors"
	"net/http"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger/models"
)

const (
	msgInvalidParams = "from and to are required (YYYY-MM-DD), category is optional"
	msgMissingActor  = "authorization required"
	msgForbidden     = "admin access required"
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

// Handle GET /api/v1/admin/ledger
// Query params: from, to (required, YYYY-MM-DD), category
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/ledger - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	req := &models.ListEntriesRequest{
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
		Category: handlers.QueryString(r, "category"),
	}

	result, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAccessDenied):
			h.logger.Warn("GET /admin/ledger - Access denied: user_id=%s, role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, ledger.ErrInvalidInput):
			h.logger.Warn("GET /admin/ledger - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams, err.Error())

		default:
			h.logger.Error("GET /admin/ledger - Failed to list entries: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/ledger - Entries retrieved: from=%s, to=%s, count=%d", req.From, req.To, result.EntriesCount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
