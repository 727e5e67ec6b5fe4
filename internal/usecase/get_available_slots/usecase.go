package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	availabilityService "github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
)

// UseCase use case для получения доступности слотов на период
type UseCase struct {
	businessRepo BusinessRepository
	rules        RuleResolver
	overrides    OverrideLister
	commitments  CommitmentSource
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	businessRepo BusinessRepository,
	rules RuleResolver,
	overrides OverrideLister,
	commitments CommitmentSource,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = domain.MaxSlotRangeDays
	}
	return &UseCase{
		businessRepo: businessRepo,
		rules:        rules,
		overrides:    overrides,
		commitments:  commitments,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, start=%s, end=%s",
		req.BusinessID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.opts.MaxRangeDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	start, end := domain.DateOnly(req.StartDate), domain.DateOnly(req.EndDate)

	// 2. Получаем компанию (время уведомления)
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Получаем исключения и занятость за весь период одним запросом
	overrides, err := uc.overrides.ListOverrides(ctx, req.BusinessID, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get overrides: %v", ErrInternal, err)
	}

	commitments, err := uc.commitments.ListCommitments(ctx, req.BusinessID, start, end)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get commitments: %v", err)
		return nil, fmt.Errorf("%w: failed to get commitments: %v", ErrInternal, err)
	}
	counts := countBySlot(commitments)

	// 4. Граница минимального времени уведомления
	noticeHours := business.NoticeHours(uc.opts.DefaultMinNoticeHours)
	cutoff := uc.timeProvider.Now().UTC().Add(time.Duration(noticeHours) * time.Hour)

	// 5. Идем по датам в UTC, шаг - календарный день
	rulesByWeekday := make(map[time.Weekday]*domain.AvailabilityRule, 7)
	slots := make([]domain.SlotAvailability, 0, 2*(int(end.Sub(start).Hours()/24)+1))

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		rule, ok := rulesByWeekday[date.Weekday()]
		if !ok {
			rule, err = uc.rules.ResolveRule(ctx, req.BusinessID, date.Weekday())
			if err != nil {
				if errors.Is(err, availabilityService.ErrBusinessNotFound) {
					return nil, ErrBusinessNotFound
				}
				uc.logger.Error("GetAvailableSlots: failed to resolve rule for %s: %v", date.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: failed to resolve rule: %v", ErrInternal, err)
			}
			rulesByWeekday[date.Weekday()] = rule
		}

		day := availabilityService.ResolveDay(overrides, date)
		for _, kind := range domain.SlotKinds {
			slot := uc.evaluate(date, kind, rule, day, counts, cutoff)
			slots = append(slots, slot)
			if uc.metrics != nil {
				uc.metrics.SlotGenerated(slot.Available)
			}
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%s", len(slots), req.BusinessID)

	return &Response{
		BusinessID: req.BusinessID,
		StartDate:  start,
		EndDate:    end,
		Slots:      slots,
	}, nil
}

// evaluate вычисляет доступность одного слота
func (uc *UseCase) evaluate(
	date time.Time,
	kind domain.SlotKind,
	rule *domain.AvailabilityRule,
	day domain.DayOverrides,
	counts map[string]int,
	cutoff time.Time,
) domain.SlotAvailability {
	maxJobs := rule.MaxJobs(kind)
	if uc.opts.ApplyExtraCapacity {
		if extra, ok := day.ExtraCapacity(kind); ok && extra > maxJobs {
			maxJobs = extra
		}
	}

	slot := domain.SlotAvailability{
		Date:            date,
		Slot:            kind,
		MaxJobs:         maxJobs,
		CurrentBookings: counts[slotKey(date, kind)],
		Blocked:         day.Blocked(kind),
		TooSoon:         isTooSoon(date, kind, cutoff),
	}
	slot.Available = !slot.Blocked &&
		!slot.TooSoon &&
		slot.CurrentBookings < slot.MaxJobs &&
		slot.MaxJobs > 0

	return slot
}

// isTooSoon сравнивает номинальное начало слота (UTC) с границей уведомления
func isTooSoon(date time.Time, kind domain.SlotKind, cutoff time.Time) bool {
	start, err := kind.NominalStart().On(date)
	if err != nil {
		return true
	}
	return start.Before(cutoff)
}
