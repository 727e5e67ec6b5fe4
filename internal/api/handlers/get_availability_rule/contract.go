package get_availability_rule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
)

type AvailabilityService interface {
	GetRule(ctx context.Context, businessID uuid.UUID, weekday time.Weekday) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
