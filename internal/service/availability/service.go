package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	availabilityRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/availability"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
)

// Service сервис правил и исключений доступности
type Service struct {
	ruleRepo     RuleRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	ruleRepo RuleRepository,
	businessRepo BusinessRepository,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// ResolveRule возвращает правило на день недели.
// Если правила нет, создается правило по умолчанию. Если хранилище недоступно,
// используется правило по умолчанию в памяти.
func (s *Service) ResolveRule(ctx context.Context, businessID uuid.UUID, weekday time.Weekday) (*domain.AvailabilityRule, error) {
	fallback := domain.DefaultRule(businessID, weekday)

	rule, err := s.ruleRepo.EnsureRule(ctx, fallback)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrBusinessNotFound) {
			s.logger.Warn("ResolveRule: business=%s not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Warn("ResolveRule: store unavailable for business=%s, weekday=%d, using default rule: %v",
			businessID, weekday, err)
		return &fallback, nil
	}

	return rule, nil
}

// GetRule получает правило на день недели для отображения
func (s *Service) GetRule(ctx context.Context, businessID uuid.UUID, weekday time.Weekday) (*models.RuleResponse, error) {
	s.logger.Info("GetRule: business=%s, weekday=%d", businessID, weekday)

	rule, err := s.ResolveRule(ctx, businessID, weekday)
	if err != nil {
		return nil, err
	}
	return models.FromDomainRule(rule), nil
}

// UpdateRule заменяет шаблон дня недели
// Доступно только владельцу компании и администратору
func (s *Service) UpdateRule(ctx context.Context, actor domain.Actor, businessID uuid.UUID, weekday time.Weekday, in *models.RuleInput) (*models.RuleResponse, error) {
	s.logger.Info("UpdateRule: business=%s, weekday=%d by user=%s", businessID, weekday, actor.UserID)

	// 1. Валидируем входные данные
	rule, err := in.ToDomainRule(businessID, weekday)
	if err != nil {
		s.logger.Warn("UpdateRule: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем права доступа
	if err := s.authorize(ctx, "UpdateRule", actor, businessID); err != nil {
		return nil, err
	}

	// 3. Сохраняем шаблон
	saved, err := s.ruleRepo.UpsertRule(ctx, rule)
	if err != nil {
		s.logger.Error("UpdateRule: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: UpdateRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRule: successfully updated rule business=%s, weekday=%d", businessID, weekday)
	return models.FromDomainRule(saved), nil
}

// ListOverrides получает исключения за период без проверки прав.
// Используется генератором слотов.
func (s *Service) ListOverrides(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.AvailabilityOverride, error) {
	overrides, err := s.ruleRepo.ListOverrides(ctx, businessID, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		s.logger.Error("ListOverrides: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %v", ErrInternal, err)
	}
	return overrides, nil
}

// ListBusinessOverrides получает исключения компании за период
// Доступно только владельцу компании и администратору
func (s *Service) ListBusinessOverrides(ctx context.Context, actor domain.Actor, businessID uuid.UUID, from, to time.Time) (*models.OverrideListResponse, error) {
	s.logger.Info("ListBusinessOverrides: business=%s, from=%s, to=%s by user=%s",
		businessID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), actor.UserID)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	if err := s.authorize(ctx, "ListBusinessOverrides", actor, businessID); err != nil {
		return nil, err
	}

	overrides, err := s.ListOverrides(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}
	return models.FromDomainOverrideList(overrides), nil
}

// CreateOverride создает исключение на дату
// Доступно только владельцу компании и администратору
func (s *Service) CreateOverride(ctx context.Context, actor domain.Actor, businessID uuid.UUID, in *models.OverrideInput) (*models.OverrideResponse, error) {
	s.logger.Info("CreateOverride: business=%s, date=%s, kind=%s, scope=%s by user=%s",
		businessID, in.Date, in.Kind, in.Scope, actor.UserID)

	override, err := in.ToDomainOverride(businessID)
	if err != nil {
		s.logger.Warn("CreateOverride: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.authorize(ctx, "CreateOverride", actor, businessID); err != nil {
		return nil, err
	}

	created, err := s.ruleRepo.CreateOverride(ctx, override)
	if err != nil {
		s.logger.Error("CreateOverride: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOverride: successfully created override id=%s", created.ID)
	return models.FromDomainOverride(created), nil
}

// DeleteOverride удаляет исключение
// Доступно только владельцу компании и администратору
func (s *Service) DeleteOverride(ctx context.Context, actor domain.Actor, businessID, overrideID uuid.UUID) error {
	s.logger.Info("DeleteOverride: business=%s, override=%s by user=%s", businessID, overrideID, actor.UserID)

	if err := s.authorize(ctx, "DeleteOverride", actor, businessID); err != nil {
		return err
	}

	if err := s.ruleRepo.DeleteOverride(ctx, businessID, overrideID); err != nil {
		if errors.Is(err, availabilityRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override=%s not found in business=%s", overrideID, businessID)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for override=%s: %v", overrideID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: successfully deleted override=%s", overrideID)
	return nil
}

// ResolveDay сводит исключения одной даты: блокировки и дополнительную вместимость
func ResolveDay(overrides []domain.AvailabilityOverride, date time.Time) domain.DayOverrides {
	day := domain.DateOnly(date)

	var result domain.DayOverrides
	for _, o := range overrides {
		if !domain.DateOnly(o.Date).Equal(day) {
			continue
		}

		switch o.Kind {
		case domain.OverrideBlock:
			switch o.Scope {
			case domain.ScopeFullDay:
				result.FullDayBlocked = true
			case domain.ScopeMorning:
				result.MorningBlocked = true
			case domain.ScopeAfternoon:
				result.AfternoonBlocked = true
			}
		case domain.OverrideExtra:
			result.Extras = append(result.Extras, o)
		}
	}
	return result
}

// Вспомогательные методы

// authorize проверяет, что пользователь владеет компанией или является администратором
func (s *Service) authorize(ctx context.Context, op string, actor domain.Actor, businessID uuid.UUID) error {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business=%s not found", op, businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business=%s: %v", op, businessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !actor.CanManage(business) {
		s.logger.Warn("%s: user=%s cannot manage business=%s", op, actor.UserID, businessID)
		return ErrAccessDenied
	}
	return nil
}
