package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	availabilityRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/availability"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
	"github.com/LomaCotta/haulers-app-sub001/pkg/ptr"
)

type ruleKey struct {
	businessID uuid.UUID
	weekday    time.Weekday
}

// memoryRuleRepo emulates the unique (business_id, weekday) index.
type memoryRuleRepo struct {
	mu        sync.Mutex
	rules     map[ruleKey]domain.AvailabilityRule
	inserts   int
	overrides []domain.AvailabilityOverride
	ensureErr error
}

func newMemoryRuleRepo() *memoryRuleRepo {
	return &memoryRuleRepo{rules: make(map[ruleKey]domain.AvailabilityRule)}
}

func (m *memoryRuleRepo) EnsureRule(_ context.Context, rule domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ruleKey{rule.BusinessID, rule.Weekday}
	if _, ok := m.rules[key]; !ok {
		rule.ID = uuid.New()
		m.rules[key] = rule
		m.inserts++
	}
	stored := m.rules[key]
	return &stored, nil
}

func (m *memoryRuleRepo) UpsertRule(_ context.Context, rule domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ruleKey{rule.BusinessID, rule.Weekday}
	if existing, ok := m.rules[key]; ok {
		rule.ID = existing.ID
	} else {
		rule.ID = uuid.New()
	}
	m.rules[key] = rule
	return &rule, nil
}

func (m *memoryRuleRepo) ListOverrides(_ context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.AvailabilityOverride, error) {
	var out []domain.AvailabilityOverride
	for _, o := range m.overrides {
		if o.BusinessID == businessID && !o.Date.Before(from) && !o.Date.After(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryRuleRepo) CreateOverride(_ context.Context, o domain.AvailabilityOverride) (*domain.AvailabilityOverride, error) {
	o.ID = uuid.New()
	m.overrides = append(m.overrides, o)
	return &o, nil
}

func (m *memoryRuleRepo) DeleteOverride(_ context.Context, businessID, overrideID uuid.UUID) error {
	for i, o := range m.overrides {
		if o.ID == overrideID && o.BusinessID == businessID {
			m.overrides = append(m.overrides[:i], m.overrides[i+1:]...)
			return nil
		}
	}
	return availabilityRepo.ErrOverrideNotFound
}

type fakeBusinessRepo struct {
	business *domain.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	if f.business == nil || f.business.ID != id {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

func newTestService() (*Service, *memoryRuleRepo, *domain.Business) {
	biz := &domain.Business{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newMemoryRuleRepo()
	return NewService(repo, &fakeBusinessRepo{business: biz}, logger.NewNop()), repo, biz
}

func TestResolveRuleCreatesDefault(t *testing.T) {
	svc, repo, biz := newTestService()

	rule, err := svc.ResolveRule(context.Background(), biz.ID, time.Monday)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultMorningJobs, rule.MorningJobs)
	assert.Equal(t, domain.DefaultAfternoonJobs, rule.AfternoonJobs)
	assert.Equal(t, domain.DefaultMorningStart, rule.MorningStart.String())
	assert.Equal(t, domain.DefaultAfternoonEnd, rule.AfternoonEnd.String())
	assert.Equal(t, 1, repo.inserts)
}

func TestResolveRuleConcurrentFirstAccess(t *testing.T) {
	svc, repo, biz := newTestService()

	const callers = 20
	ids := make([]uuid.UUID, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rule, err := svc.ResolveRule(context.Background(), biz.ID, time.Saturday)
			if assert.NoError(t, err) {
				ids[i] = rule.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.inserts)
	assert.Len(t, repo.rules, 1)
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestResolveRuleStoreFailureFallsBack(t *testing.T) {
	svc, repo, biz := newTestService()
	repo.ensureErr = errors.New("connection refused")

	rule, err := svc.ResolveRule(context.Background(), biz.ID, time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMorningJobs, rule.MorningJobs)
	assert.Equal(t, uuid.Nil, rule.ID)

	repo.ensureErr = availabilityRepo.ErrBusinessNotFound
	_, err = svc.ResolveRule(context.Background(), biz.ID, time.Tuesday)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func validRuleInput() *models.RuleInput {
	return &models.RuleInput{
		MorningJobs:    4,
		AfternoonJobs:  1,
		MorningStart:   "07:30",
		MorningEnd:     "11:30",
		AfternoonStart: "12:30",
		AfternoonEnd:   "18:00",
	}
}

func TestUpdateRule(t *testing.T) {
	svc, _, biz := newTestService()
	owner := domain.Actor{UserID: biz.OwnerID, Role: domain.RoleBusiness}

	resp, err := svc.UpdateRule(context.Background(), owner, biz.ID, time.Friday, validRuleInput())
	require.NoError(t, err)
	assert.Equal(t, 4, resp.MorningJobs)
	assert.Equal(t, "07:30", resp.MorningStart)

	rule, err := svc.ResolveRule(context.Background(), biz.ID, time.Friday)
	require.NoError(t, err)
	assert.Equal(t, 1, rule.AfternoonJobs)
}

func TestUpdateRuleRejects(t *testing.T) {
	svc, _, biz := newTestService()
	owner := domain.Actor{UserID: biz.OwnerID, Role: domain.RoleBusiness}

	tooMany := validRuleInput()
	tooMany.MorningJobs = 51
	_, err := svc.UpdateRule(context.Background(), owner, biz.ID, time.Friday, tooMany)
	assert.ErrorIs(t, err, ErrInvalidInput)

	inverted := validRuleInput()
	inverted.AfternoonStart, inverted.AfternoonEnd = "18:00", "12:30"
	_, err = svc.UpdateRule(context.Background(), owner, biz.ID, time.Friday, inverted)
	assert.ErrorIs(t, err, ErrInvalidInput)

	malformed := validRuleInput()
	malformed.MorningStart = "7am"
	_, err = svc.UpdateRule(context.Background(), owner, biz.ID, time.Friday, malformed)
	assert.ErrorIs(t, err, ErrInvalidInput)

	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}
	_, err = svc.UpdateRule(context.Background(), stranger, biz.ID, time.Friday, validRuleInput())
	assert.ErrorIs(t, err, ErrAccessDenied)

	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	_, err = svc.UpdateRule(context.Background(), admin, uuid.New(), time.Friday, validRuleInput())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestOverrideLifecycle(t *testing.T) {
	svc, _, biz := newTestService()
	ctx := context.Background()
	owner := domain.Actor{UserID: biz.OwnerID, Role: domain.RoleBusiness}

	created, err := svc.CreateOverride(ctx, owner, biz.ID, &models.OverrideInput{
		Date:   "2025-07-04",
		Kind:   "block",
		Scope:  "full_day",
		Reason: ptr.Ptr("holiday"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-07-04", created.Date)

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	list, err := svc.ListBusinessOverrides(ctx, owner, biz.ID, from, to)
	require.NoError(t, err)
	require.Len(t, list.Overrides, 1)

	customer := domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}
	_, err = svc.ListBusinessOverrides(ctx, customer, biz.ID, from, to)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.DeleteOverride(ctx, owner, biz.ID, created.ID))
	assert.ErrorIs(t, svc.DeleteOverride(ctx, owner, biz.ID, created.ID), ErrOverrideNotFound)
}

func TestCreateOverrideValidation(t *testing.T) {
	svc, _, biz := newTestService()
	owner := domain.Actor{UserID: biz.OwnerID, Role: domain.RoleBusiness}

	inputs := []*models.OverrideInput{
		{Date: "07/04/2025", Kind: "block", Scope: "full_day"},
		{Date: "2025-07-04", Kind: "closed", Scope: "full_day"},
		{Date: "2025-07-04", Kind: "block", Scope: "evening"},
		{Date: "2025-07-04", Kind: "extra", Scope: "morning"},
	}
	for _, in := range inputs {
		_, err := svc.CreateOverride(context.Background(), owner, biz.ID, in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)
	}
}

func TestResolveDay(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	other := date.AddDate(0, 0, 1)

	overrides := []domain.AvailabilityOverride{
		{Date: date, Kind: domain.OverrideBlock, Scope: domain.ScopeMorning},
		{Date: date, Kind: domain.OverrideExtra, Scope: domain.ScopeAfternoon, MaxConcurrentJobs: ptr.Ptr(5)},
		{Date: other, Kind: domain.OverrideBlock, Scope: domain.ScopeFullDay},
	}

	day := ResolveDay(overrides, date.Add(15*time.Hour))
	assert.False(t, day.FullDayBlocked)
	assert.True(t, day.Blocked(domain.SlotMorning))
	assert.False(t, day.Blocked(domain.SlotAfternoon))
	extra, ok := day.ExtraCapacity(domain.SlotAfternoon)
	assert.True(t, ok)
	assert.Equal(t, 5, extra)

	next := ResolveDay(overrides, other)
	assert.True(t, next.Blocked(domain.SlotMorning))
	assert.True(t, next.Blocked(domain.SlotAfternoon))
	assert.Empty(t, next.Extras)
}
