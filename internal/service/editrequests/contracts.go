package editrequests

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
)

// EditRequestRepository интерфейс репозитория запросов на изменение
type EditRequestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EditRequest, error)
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
	ApproveEditRequest(ctx context.Context, requestID, actorID uuid.UUID) (*rpc.Result, error)
	RejectEditRequest(ctx context.Context, requestID, actorID uuid.UUID, reason string) (*rpc.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
