package quotes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
)

// QuoteRepository интерфейс репозитория коммерческих предложений
type QuoteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error)
	GetCurrentByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Quote, error)
	MarkViewed(ctx context.Context, id uuid.UUID, at time.Time) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// BusinessRepository интерфейс репозитория компаний
type BusinessRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// ProcedureClient интерфейс вызова хранимых процедур
type ProcedureClient interface {
	RespondToQuote(ctx context.Context, quoteID, customerID uuid.UUID, decision domain.QuoteDecision, note string) (*rpc.Result, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
