package quotes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	quoteRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/quote"
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
	"github.com/LomaCotta/haulers-app-sub001/pkg/ptr"
)

type fakeQuoteRepo struct {
	quotes map[uuid.UUID]*domain.Quote
	viewed []uuid.UUID
}

func (f *fakeQuoteRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Quote, error) {
	q, ok := f.quotes[id]
	if !ok {
		return nil, quoteRepo.ErrQuoteNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuoteRepo) GetCurrentByBooking(_ context.Context, bookingID uuid.UUID) (*domain.Quote, error) {
	var current *domain.Quote
	for _, q := range f.quotes {
		if q.BookingID != bookingID {
			continue
		}
		if current == nil || q.CreatedAt.After(current.CreatedAt) {
			current = q
		}
	}
	if current == nil {
		return nil, quoteRepo.ErrQuoteNotFound
	}
	cp := *current
	return &cp, nil
}

func (f *fakeQuoteRepo) MarkViewed(_ context.Context, id uuid.UUID, at time.Time) error {
	f.viewed = append(f.viewed, id)
	if q, ok := f.quotes[id]; ok && q.Status == domain.QuoteSent {
		q.Status = domain.QuoteViewed
		q.ViewedAt = &at
	}
	return nil
}

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
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

type mockProcedures struct {
	mock.Mock
}

func (m *mockProcedures) RespondToQuote(ctx context.Context, quoteID, customerID uuid.UUID, decision domain.QuoteDecision, note string) (*rpc.Result, error) {
	args := m.Called(ctx, quoteID, customerID, decision, note)
	res, _ := args.Get(0).(*rpc.Result)
	return res, args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc        *Service
	quotes     *fakeQuoteRepo
	procedures *mockProcedures
	booking    *domain.Booking
	quote      *domain.Quote
	customer   domain.Actor
	owner      domain.Actor
}

func newFixture() *fixture {
	ownerID := uuid.New()
	customerID := uuid.New()
	business := &domain.Business{ID: uuid.New(), OwnerID: ownerID}
	booking := &domain.Booking{ID: uuid.New(), BusinessID: business.ID, CustomerID: customerID, Status: domain.StatusQuoted}

	older := &domain.Quote{
		ID: uuid.New(), BookingID: booking.ID, BusinessID: business.ID,
		AmountCents: 50000, Status: domain.QuoteRejected, CreatedAt: now.Add(-48 * time.Hour),
	}
	current := &domain.Quote{
		ID: uuid.New(), BookingID: booking.ID, BusinessID: business.ID,
		AmountCents: 62000, Status: domain.QuoteSent, CreatedAt: now.Add(-time.Hour),
		ExpiresAt: ptr.Ptr(now.Add(72 * time.Hour)),
	}

	quotes := &fakeQuoteRepo{quotes: map[uuid.UUID]*domain.Quote{older.ID: older, current.ID: current}}
	procedures := &mockProcedures{}

	return &fixture{
		svc: NewService(quotes, &fakeBookingRepo{booking: booking}, &fakeBusinessRepo{business: business},
			procedures, fixedTime{now: now}, logger.NewNop()),
		quotes:     quotes,
		procedures: procedures,
		booking:    booking,
		quote:      current,
		customer:   domain.Actor{UserID: customerID, Role: domain.RoleCustomer},
		owner:      domain.Actor{UserID: ownerID, Role: domain.RoleBusiness},
	}
}

func TestGetCurrentReturnsLatestAndMarksViewed(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetCurrent(context.Background(), f.customer, f.booking.ID)
	require.NoError(t, err)

	assert.Equal(t, f.quote.ID, resp.ID)
	assert.Equal(t, "viewed", resp.Status)
	assert.True(t, resp.Actionable)
	assert.Equal(t, []uuid.UUID{f.quote.ID}, f.quotes.viewed)
}

func TestGetCurrentByOwnerDoesNotMarkViewed(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetCurrent(context.Background(), f.owner, f.booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "sent", resp.Status)
	assert.Empty(t, f.quotes.viewed)
}

func TestGetCurrentExpiredQuote(t *testing.T) {
	f := newFixture()
	f.quote.ExpiresAt = ptr.Ptr(now.Add(-time.Minute))

	resp, err := f.svc.GetCurrent(context.Background(), f.customer, f.booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "expired", resp.Status)
	assert.False(t, resp.Actionable)
	assert.Empty(t, f.quotes.viewed)
}

func TestGetCurrentAccessDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetCurrent(context.Background(), domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}, f.booking.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetCurrent(context.Background(), domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}, f.booking.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRespondAccept(t *testing.T) {
	f := newFixture()
	f.procedures.On("RespondToQuote", mock.Anything, f.quote.ID, f.customer.UserID, domain.DecisionAccept, "see you monday").
		Return(&rpc.Result{Success: true, Message: "Quote accepted"}, nil).Once()

	resp, err := f.svc.Respond(context.Background(), f.customer, f.quote.ID, &models.RespondRequest{
		Decision: "Accept",
		Note:     "see you monday",
	})
	require.NoError(t, err)

	assert.Equal(t, "accept", resp.Decision)
	assert.Equal(t, "Quote accepted", resp.Message)
	f.procedures.AssertExpectations(t)
}

func TestRespondProcedureRejection(t *testing.T) {
	f := newFixture()
	f.procedures.On("RespondToQuote", mock.Anything, f.quote.ID, f.customer.UserID, domain.DecisionReject, "").
		Return(&rpc.Result{Success: false, Message: "Quote already answered"}, rpc.ErrProcedureFailed).Once()

	_, err := f.svc.Respond(context.Background(), f.customer, f.quote.ID, &models.RespondRequest{Decision: "reject"})
	require.ErrorIs(t, err, ErrRejectedByProcedure)
	assert.Contains(t, err.Error(), "Quote already answered")
}

func TestRespondTransportFailure(t *testing.T) {
	f := newFixture()
	f.procedures.On("RespondToQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, rpc.ErrTransport).Once()

	_, err := f.svc.Respond(context.Background(), f.customer, f.quote.ID, &models.RespondRequest{Decision: "accept"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRespondPlatformErrorIsInternal(t *testing.T) {
	f := newFixture()
	f.procedures.On("RespondToQuote", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("respond_to_quote: %w: code=23505: duplicate key value", rpc.ErrPlatform)).Once()

	_, err := f.svc.Respond(context.Background(), f.customer, f.quote.ID, &models.RespondRequest{Decision: "accept"})
	require.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrRejectedByProcedure)
}

func TestRespondGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid decision", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Respond(ctx, f.customer, f.quote.ID, &models.RespondRequest{Decision: "maybe"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not the customer", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Respond(ctx, f.owner, f.quote.ID, &models.RespondRequest{Decision: "accept"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already answered", func(t *testing.T) {
		f := newFixture()
		f.quote.Status = domain.QuoteAccepted
		_, err := f.svc.Respond(ctx, f.customer, f.quote.ID, &models.RespondRequest{Decision: "accept"})
		assert.ErrorIs(t, err, ErrQuoteNotActionable)
	})

	t.Run("expired", func(t *testing.T) {
		f := newFixture()
		f.quote.ExpiresAt = ptr.Ptr(now)
		_, err := f.svc.Respond(ctx, f.customer, f.quote.ID, &models.RespondRequest{Decision: "accept"})
		assert.ErrorIs(t, err, ErrQuoteNotActionable)
	})

	t.Run("unknown quote", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Respond(ctx, f.customer, uuid.New(), &models.RespondRequest{Decision: "accept"})
		assert.ErrorIs(t, err, ErrQuoteNotFound)
	})
}
