package create_override

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
)

type AvailabilityService interface {
	CreateOverride(ctx context.Context, actor domain.Actor, businessID uuid.UUID, in *models.OverrideInput) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
