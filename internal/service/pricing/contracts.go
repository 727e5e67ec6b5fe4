package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	ListPricingTiers(ctx context.Context, businessID uuid.UUID) ([]domain.PricingTier, error)
}

// Metrics счетчик пересчетов стоимости
type Metrics interface {
	PriceRecalculated(rateSource string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
