package delete_override

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

type AvailabilityService interface {
	DeleteOverride(ctx context.Context, actor domain.Actor, businessID, overrideID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
