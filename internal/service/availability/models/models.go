package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/pkg/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Request модели

// RuleInput шаблон вместимости на день недели
type RuleInput struct {
	MorningJobs    int    `json:"morningJobs" validate:"min=0,max=50"`
	AfternoonJobs  int    `json:"afternoonJobs" validate:"min=0,max=50"`
	MorningStart   string `json:"morningStart" validate:"required"`
	MorningEnd     string `json:"morningEnd" validate:"required"`
	AfternoonStart string `json:"afternoonStart" validate:"required"`
	AfternoonEnd   string `json:"afternoonEnd" validate:"required"`
}

// ToDomainRule проверяет шаблон и конвертирует его в domain модель
func (in *RuleInput) ToDomainRule(businessID uuid.UUID, weekday time.Weekday) (domain.AvailabilityRule, error) {
	if err := validate.Struct(in); err != nil {
		return domain.AvailabilityRule{}, err
	}

	rule := domain.AvailabilityRule{
		BusinessID:    businessID,
		Weekday:       weekday,
		MorningJobs:   in.MorningJobs,
		AfternoonJobs: in.AfternoonJobs,
	}

	var err error
	if rule.MorningStart, rule.MorningEnd, err = parseWindow("morning", in.MorningStart, in.MorningEnd); err != nil {
		return domain.AvailabilityRule{}, err
	}
	if rule.AfternoonStart, rule.AfternoonEnd, err = parseWindow("afternoon", in.AfternoonStart, in.AfternoonEnd); err != nil {
		return domain.AvailabilityRule{}, err
	}
	return rule, nil
}

func parseWindow(name, start, end string) (types.TimeString, types.TimeString, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return "", "", fmt.Errorf("%s start: %v", name, err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return "", "", fmt.Errorf("%s end: %v", name, err)
	}
	if !s.IsBefore(e) {
		return "", "", fmt.Errorf("%s window: start must be before end", name)
	}
	return s, e, nil
}

// OverrideInput исключение на конкретную дату
type OverrideInput struct {
	Date              string  `json:"date" validate:"required"`
	Kind              string  `json:"kind" validate:"required,oneof=block extra"`
	Scope             string  `json:"scope" validate:"required,oneof=full_day morning afternoon"`
	MaxConcurrentJobs *int    `json:"maxConcurrentJobs,omitempty" validate:"omitempty,min=0,max=50"`
	Reason            *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToDomainOverride проверяет исключение и конвертирует его в domain модель
func (in *OverrideInput) ToDomainOverride(businessID uuid.UUID) (domain.AvailabilityOverride, error) {
	if err := validate.Struct(in); err != nil {
		return domain.AvailabilityOverride{}, err
	}

	date, err := time.Parse(domain.DateFormat, in.Date)
	if err != nil {
		return domain.AvailabilityOverride{}, fmt.Errorf("date: expected YYYY-MM-DD")
	}

	kind := domain.OverrideKind(in.Kind)
	if kind == domain.OverrideExtra && in.MaxConcurrentJobs == nil {
		return domain.AvailabilityOverride{}, fmt.Errorf("maxConcurrentJobs is required for extra overrides")
	}

	return domain.AvailabilityOverride{
		BusinessID:        businessID,
		Date:              domain.DateOnly(date),
		Kind:              kind,
		Scope:             domain.OverrideScope(in.Scope),
		MaxConcurrentJobs: in.MaxConcurrentJobs,
		Reason:            in.Reason,
	}, nil
}

// Response модели

// RuleResponse ответ с шаблоном дня недели
type RuleResponse struct {
	BusinessID     uuid.UUID `json:"businessId"`
	Weekday        int       `json:"weekday"`
	MorningJobs    int       `json:"morningJobs"`
	AfternoonJobs  int       `json:"afternoonJobs"`
	MorningStart   string    `json:"morningStart"`
	MorningEnd     string    `json:"morningEnd"`
	AfternoonStart string    `json:"afternoonStart"`
	AfternoonEnd   string    `json:"afternoonEnd"`
}

// OverrideResponse ответ с исключением
type OverrideResponse struct {
	ID                uuid.UUID `json:"id"`
	BusinessID        uuid.UUID `json:"businessId"`
	Date              string    `json:"date"`
	Kind              string    `json:"kind"`
	Scope             string    `json:"scope"`
	MaxConcurrentJobs *int      `json:"maxConcurrentJobs,omitempty"`
	Reason            *string   `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// OverrideListResponse ответ со списком исключений
type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}
	return &RuleResponse{
		BusinessID:     r.BusinessID,
		Weekday:        int(r.Weekday),
		MorningJobs:    r.MorningJobs,
		AfternoonJobs:  r.AfternoonJobs,
		MorningStart:   r.MorningStart.String(),
		MorningEnd:     r.MorningEnd.String(),
		AfternoonStart: r.AfternoonStart.String(),
		AfternoonEnd:   r.AfternoonEnd.String(),
	}
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.AvailabilityOverride) *OverrideResponse {
	if o == nil {
		return nil
	}
	return &OverrideResponse{
		ID:                o.ID,
		BusinessID:        o.BusinessID,
		Date:              o.Date.Format(domain.DateFormat),
		Kind:              string(o.Kind),
		Scope:             string(o.Scope),
		MaxConcurrentJobs: o.MaxConcurrentJobs,
		Reason:            o.Reason,
		CreatedAt:         o.CreatedAt,
	}
}

// FromDomainOverrideList конвертирует список domain моделей в DTO
func FromDomainOverrideList(list []domain.AvailabilityOverride) *OverrideListResponse {
	resp := &OverrideListResponse{Overrides: make([]OverrideResponse, 0, len(list))}
	for i := range list {
		resp.Overrides = append(resp.Overrides, *FromDomainOverride(&list[i]))
	}
	return resp
}
