package create_ledger_entry

import (
	"context"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger/models"
)

type LedgerService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
