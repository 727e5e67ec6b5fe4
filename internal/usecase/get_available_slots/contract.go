package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// RuleResolver возвращает правило на день недели, создавая его при отсутствии
type RuleResolver interface {
	ResolveRule(ctx context.Context, businessID uuid.UUID, weekday time.Weekday) (*domain.AvailabilityRule, error)
}

// OverrideLister возвращает исключения за период
type OverrideLister interface {
	ListOverrides(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.AvailabilityOverride, error)
}

// CommitmentSource источник занятых слотов (бронирования, запланированные работы)
type CommitmentSource interface {
	ListCommitments(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.Commitment, error)
}

// Metrics счетчик сгенерированных слотов
type Metrics interface {
	SlotGenerated(available bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
