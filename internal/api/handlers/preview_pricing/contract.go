package preview_pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/pricing"
)

type PricingService interface {
	Preview(ctx context.Context, businessID uuid.UUID, details *domain.MovingDetails) (*pricing.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
