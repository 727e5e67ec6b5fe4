package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// RuleRepository интерфейс репозитория правил и исключений доступности
type RuleRepository interface {
	EnsureRule(ctx context.Context, rule domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	UpsertRule(ctx context.Context, rule domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	ListOverrides(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.AvailabilityOverride, error)
	CreateOverride(ctx context.Context, o domain.AvailabilityOverride) (*domain.AvailabilityOverride, error)
	DeleteOverride(ctx context.Context, businessID, overrideID uuid.UUID) error
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
