package list_overrides

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
)

type AvailabilityService interface {
	ListBusinessOverrides(ctx context.Context, actor domain.Actor, businessID uuid.UUID, from, to time.Time) (*models.OverrideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
