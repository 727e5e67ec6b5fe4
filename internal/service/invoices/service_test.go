package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	invoiceRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/invoice"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
	"github.com/LomaCotta/haulers-app-sub001/pkg/ptr"
)

type memoryInvoiceRepo struct {
	invoices map[uuid.UUID]*domain.Invoice
}

func (m *memoryInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	for _, existing := range m.invoices {
		if inv.BookingID != nil && existing.BookingID != nil && *existing.BookingID == *inv.BookingID {
			return nil, invoiceRepo.ErrAlreadyInvoiced
		}
	}
	cp := *inv
	cp.ID = uuid.New()
	m.invoices[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memoryInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memoryInvoiceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return m.GetByID(ctx, id)
}

func (m *memoryInvoiceRepo) ExistsForBooking(_ context.Context, bookingID uuid.UUID) (bool, error) {
	for _, inv := range m.invoices {
		if inv.BookingID != nil && *inv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryInvoiceRepo) Update(_ context.Context, inv *domain.Invoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return invoiceRepo.ErrInvoiceNotFound
	}
	cp := *inv
	m.invoices[inv.ID] = &cp
	return nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

type fakeBusinessRepo struct {
	business *domain.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	if f.business.ID != id {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return f.business, nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var now = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	invoices *memoryInvoiceRepo
	booking  *domain.Booking
	owner    domain.Actor
	customer domain.Actor
}

func newFixture() *fixture {
	ownerID := uuid.New()
	business := &domain.Business{ID: uuid.New(), OwnerID: ownerID}
	booking := &domain.Booking{
		ID:              uuid.New(),
		BusinessID:      business.ID,
		CustomerID:      uuid.New(),
		Status:          domain.StatusCompleted,
		TotalPriceCents: 86200,
	}

	invoices := &memoryInvoiceRepo{invoices: make(map[uuid.UUID]*domain.Invoice)}
	svc := NewService(
		invoices,
		&fakeBookingRepo{bookings: map[uuid.UUID]*domain.Booking{booking.ID: booking}},
		&fakeBusinessRepo{business: business},
		inlineTx{},
		fixedTime{now: now},
		logger.NewNop(),
	)

	return &fixture{
		svc:      svc,
		invoices: invoices,
		booking:  booking,
		owner:    domain.Actor{UserID: ownerID, Role: domain.RoleBusiness},
		customer: domain.Actor{UserID: booking.CustomerID, Role: domain.RoleCustomer},
	}
}

func (f *fixture) createDraft(t *testing.T) *models.InvoiceResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.owner, &models.CreateInvoiceRequest{
		BookingID: f.booking.ID.String(),
		DueDate:   ptr.Ptr("2026-06-15"),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateDraftFromBooking(t *testing.T) {
	f := newFixture()

	resp := f.createDraft(t)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, int64(86200), resp.TotalCents)
	assert.Equal(t, int64(86200), resp.BalanceCents)
	assert.Equal(t, "$862.00", resp.Total)
	assert.Equal(t, "2026-06-15", *resp.DueDate)
	assert.Equal(t, f.booking.CustomerID, resp.CustomerID)

	_, err := f.svc.Create(context.Background(), f.owner, &models.CreateInvoiceRequest{BookingID: f.booking.ID.String()})
	assert.ErrorIs(t, err, ErrAlreadyInvoiced)
}

func TestCreateRejectsNonInvoiceableBooking(t *testing.T) {
	f := newFixture()
	f.booking.Status = domain.StatusQuoted

	_, err := f.svc.Create(context.Background(), f.owner, &models.CreateInvoiceRequest{BookingID: f.booking.ID.String()})
	assert.ErrorIs(t, err, ErrNotInvoiceable)

	f.booking.Status = domain.StatusScheduled
	f.booking.TotalPriceCents = 0
	_, err = f.svc.Create(context.Background(), f.owner, &models.CreateInvoiceRequest{BookingID: f.booking.ID.String()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateAccessAndValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.customer, &models.CreateInvoiceRequest{BookingID: f.booking.ID.String()})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Create(ctx, f.owner, &models.CreateInvoiceRequest{BookingID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Create(ctx, f.owner, &models.CreateInvoiceRequest{BookingID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateOnlyDrafts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	draft := f.createDraft(t)

	updated, err := f.svc.Update(ctx, f.owner, draft.ID, &models.UpdateInvoiceRequest{
		Total: ptr.Ptr("900.50"),
		Notes: ptr.Ptr("  includes fuel surcharge "),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(90050), updated.TotalCents)
	assert.Equal(t, "includes fuel surcharge", *updated.Notes)

	_, err = f.svc.Send(ctx, f.owner, draft.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.owner, draft.ID, &models.UpdateInvoiceRequest{Total: ptr.Ptr("1.00")})
	assert.ErrorIs(t, err, ErrInvoiceNotEditable)
}

func TestUpdateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	draft := f.createDraft(t)

	_, err := f.svc.Update(ctx, f.owner, draft.ID, &models.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(ctx, f.owner, draft.ID, &models.UpdateInvoiceRequest{Total: ptr.Ptr("-10")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(ctx, f.owner, draft.ID, &models.UpdateInvoiceRequest{DueDate: ptr.Ptr("June 1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendIsOneWay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	draft := f.createDraft(t)

	sent, err := f.svc.Send(ctx, f.owner, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", sent.Status)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, now, *sent.SentAt)

	_, err = f.svc.Send(ctx, f.owner, draft.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecordPaymentProgression(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	draft := f.createDraft(t)

	_, err := f.svc.RecordPayment(ctx, f.owner, draft.ID, &models.PaymentRequest{Amount: "100"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Send(ctx, f.owner, draft.ID)
	require.NoError(t, err)

	partial, err := f.svc.RecordPayment(ctx, f.owner, draft.ID, &models.PaymentRequest{Amount: "$500.00"})
	require.NoError(t, err)
	assert.Equal(t, "partially_paid", partial.Status)
	assert.Equal(t, int64(36200), partial.BalanceCents)

	_, err = f.svc.RecordPayment(ctx, f.owner, draft.ID, &models.PaymentRequest{Amount: "362.01"})
	assert.ErrorIs(t, err, ErrOverpayment)

	paid, err := f.svc.RecordPayment(ctx, f.owner, draft.ID, &models.PaymentRequest{Amount: "362"})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, int64(0), paid.BalanceCents)

	_, err = f.svc.RecordPayment(ctx, f.owner, draft.ID, &models.PaymentRequest{Amount: "1"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newFixture()
	draft := f.createDraft(t)

	for _, amount := range []string{"", "0", "abc", "1.005"} {
		_, err := f.svc.RecordPayment(context.Background(), f.owner, draft.ID, &models.PaymentRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidInput, amount)
	}
}

func TestGetOverdueForCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	draft := f.createDraft(t)

	_, err := f.svc.Send(ctx, f.owner, draft.ID)
	require.NoError(t, err)

	f.svc.timeProvider = fixedTime{now: time.Date(2026, 6, 16, 9, 0, 0, 0, time.UTC)}

	resp, err := f.svc.Get(ctx, f.customer, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", resp.Status)

	_, err = f.svc.Get(ctx, domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}, draft.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Get(ctx, f.owner, uuid.New())
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
