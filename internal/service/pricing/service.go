package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
)

// Service сервис расчета стоимости с загрузкой тарифов компании
type Service struct {
	businessRepo BusinessRepository
	defaults     domain.PricingSettings
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса. metrics может быть nil.
func NewService(businessRepo BusinessRepository, defaults domain.PricingSettings, metrics Metrics, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		defaults:     defaults,
		metrics:      metrics,
		logger:       logger,
	}
}

// Quote считает стоимость по тарифам и настройкам компании
func (s *Service) Quote(ctx context.Context, business *domain.Business, in Input) (*Result, error) {
	tiers, err := s.businessRepo.ListPricingTiers(ctx, business.ID)
	if err != nil {
		s.logger.Error("Quote: failed to load pricing tiers for business=%s: %v", business.ID, err)
		return nil, fmt.Errorf("%w: Quote - load tiers: %v", ErrInternal, err)
	}

	in.Tiers = tiers
	in.Settings = business.Settings(s.defaults)

	result, err := Calculate(in)
	if err != nil {
		return nil, err
	}

	if result.RateSource == domain.RateSourceStored {
		s.logger.Warn("Quote: no tier for team_size=%d at business=%s, using stored rate=%d",
			result.TeamSize, business.ID, result.HourlyRateCents)
	}
	if s.metrics != nil {
		s.metrics.PriceRecalculated(string(result.RateSource))
	}
	return result, nil
}

// Preview считает стоимость для произвольных деталей без сохранения
func (s *Service) Preview(ctx context.Context, businessID uuid.UUID, details *domain.MovingDetails) (*Result, error) {
	s.logger.Info("Preview: business=%s, team_size=%d, hours=%d", businessID, details.TeamSize, details.EstimatedHours)

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("Preview: business=%s not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Preview: failed to get business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Preview - get business: %v", ErrInternal, err)
	}

	result, err := s.Quote(ctx, business, Input{Details: details})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Preview: business=%s, total=%d, source=%s", businessID, result.Breakdown.TotalCents, result.RateSource)
	return result, nil
}
