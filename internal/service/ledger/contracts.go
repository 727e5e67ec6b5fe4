package ledger

import (
	"context"
	"time"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// LedgerRepository интерфейс репозитория финансовых записей платформы
type LedgerRepository interface {
	Create(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error)
	ListByPeriod(ctx context.Context, from, to time.Time, category *domain.LedgerCategory) ([]*domain.LedgerEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
