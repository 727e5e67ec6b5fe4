package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	bookingRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/booking"
	businessRepo "github.com/LomaCotta/haulers-app-sub001/internal/infra/storage/business"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/bookings/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
	"github.com/LomaCotta/haulers-app-sub001/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings   map[uuid.UUID]*domain.Booking
	lastFilter domain.BookingFilter
	listErr    error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Booking
	for _, b := range f.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.BusinessID != nil && b.BusinessID != *filter.BusinessID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]*domain.Business
}

func (f *fakeBusinessRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return b, nil
}

type fixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	booking  *domain.Booking
	owner    domain.Actor
	customer domain.Actor
}

func newFixture() *fixture {
	ownerID := uuid.New()
	customerID := uuid.New()
	business := &domain.Business{ID: uuid.New(), OwnerID: ownerID}
	booking := &domain.Booking{
		ID:              uuid.New(),
		BusinessID:      business.ID,
		CustomerID:      customerID,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPaid,
		RequestedDate:   time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		RequestedSlot:   domain.SlotMorning,
		TotalPriceCents: 86200,
	}

	bookings := &fakeBookingRepo{bookings: map[uuid.UUID]*domain.Booking{booking.ID: booking}}
	businesses := &fakeBusinessRepo{businesses: map[uuid.UUID]*domain.Business{business.ID: business}}

	return &fixture{
		svc:      NewService(bookings, businesses, logger.NewNop()),
		bookings: bookings,
		booking:  booking,
		owner:    domain.Actor{UserID: ownerID, Role: domain.RoleBusiness},
		customer: domain.Actor{UserID: customerID, Role: domain.RoleCustomer},
	}
}

func TestGetByIDAccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"customer owner", f.customer, nil},
		{"business owner", f.owner, nil},
		{"admin", domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}, nil},
		{"other customer", domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}, ErrAccessDenied},
		{"other business", domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.GetByID(ctx, tt.actor, f.booking.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, f.booking.ID, resp.ID)
		})
	}
}

func TestGetByIDMapsCanonicalStatus(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetByID(context.Background(), f.customer, f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "requested", resp.Status)
	assert.True(t, resp.Locked)
	assert.Equal(t, "2026-05-04", resp.RequestedDate)
	assert.NotNil(t, resp.ServiceDetails)
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), f.owner, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListCustomerBookingsScopesToActor(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.ListCustomerBookings(context.Background(), f.customer, &models.ListBookingsRequest{
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	require.NotNil(t, f.bookings.lastFilter.CustomerID)
	assert.Equal(t, f.customer.UserID, *f.bookings.lastFilter.CustomerID)
	assert.ElementsMatch(t, []domain.BookingStatus{domain.StatusRequested, domain.StatusPending}, f.bookings.lastFilter.Statuses)
	assert.Equal(t, models.DefaultLimit, f.bookings.lastFilter.Limit)
}

func TestListBusinessBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.ListBusinessBookings(ctx, f.owner, f.booking.BusinessID, &models.ListBookingsRequest{
		StartDate: ptr.Ptr("2026-05-01"),
		EndDate:   ptr.Ptr("2026-05-31"),
		Limit:     1000,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, models.MaxLimit, f.bookings.lastFilter.Limit)

	_, err = f.svc.ListBusinessBookings(ctx, f.customer, f.booking.BusinessID, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.ListBusinessBookings(ctx, f.owner, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestListBookingsInvalidFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.ListCustomerBookings(ctx, f.customer, &models.ListBookingsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ListCustomerBookings(ctx, f.customer, &models.ListBookingsRequest{
		StartDate: ptr.Ptr("2026-05-10"),
		EndDate:   ptr.Ptr("2026-05-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ListCustomerBookings(ctx, f.customer, &models.ListBookingsRequest{StartDate: ptr.Ptr("05/10/2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookingsRepositoryError(t *testing.T) {
	f := newFixture()
	f.bookings.listErr = errors.New("connection reset")

	_, err := f.svc.ListCustomerBookings(context.Background(), f.customer, nil)
	assert.ErrorIs(t, err, ErrInternal)
}
