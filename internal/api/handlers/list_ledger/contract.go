package list_ledger

import (
	"context"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/ledger/models"
)

type LedgerService interface {
	List(ctx context.Context, actor domain.Actor, req *models.ListEntriesRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
