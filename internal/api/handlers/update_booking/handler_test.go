package update_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/handlers"
	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	updateBooking "github.com/LomaCotta/haulers-app-sub001/internal/usecase/update_booking"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*updateBooking.Response)
	return resp, args.Error(1)
}

func serve(t *testing.T, uc UpdateBookingUseCase, actor *domain.Actor, bookingID, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID, strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleLockedBooking(t *testing.T) {
	uc := new(mockUseCase)
	owner := domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}
	bookingID := uuid.New()

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateBooking.Request) bool {
		return req.BookingID == bookingID && req.Actor == owner && req.Patch.RequestedDate != nil
	})).Return(nil, updateBooking.ErrBookingLocked)

	rec := serve(t, uc, &owner, bookingID.String(), `{"requestedDate":"2025-10-20"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Cannot edit booking after payment has been completed", body.Error)
	uc.AssertExpectations(t)
}

func TestHandleSuccess(t *testing.T) {
	uc := new(mockUseCase)
	owner := domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}
	booking := &domain.Booking{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		Status:          domain.StatusScheduled,
		TeamSize:        3,
		HourlyRateCents: 17500,
		TotalPriceCents: 52500,
	}
	breakdown := &domain.PriceBreakdown{MoverTeam: 3, HourlyRateCents: 17500, BillableHours: 3, BaseCents: 52500, TotalCents: 52500}

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateBooking.Request) bool {
		return req.Patch.TeamSize != nil && *req.Patch.TeamSize == 3
	})).Return(&updateBooking.Response{
		Booking:    booking,
		Breakdown:  breakdown,
		RateSource: domain.RateSourceExactTier,
	}, nil)

	rec := serve(t, uc, &owner, booking.ID.String(), `{"teamSize":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body PatchBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, booking.ID, body.Booking.ID)
	assert.Equal(t, int64(52500), body.Booking.TotalPriceCents)
	assert.Equal(t, "tier", body.RateSource)
	require.NotNil(t, body.Breakdown)
	assert.True(t, body.Breakdown.Consistent())
}

func TestHandleErrors(t *testing.T) {
	owner := domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", updateBooking.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", updateBooking.ErrAccessDenied, http.StatusForbidden},
		{"invalid input", updateBooking.ErrInvalidInput, http.StatusBadRequest},
		{"no rate", updateBooking.ErrNoRate, http.StatusBadRequest},
		{"internal", updateBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(t, uc, &owner, uuid.NewString(), `{"status":"completed"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleRejectsBadInput(t *testing.T) {
	owner := domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}
	uc := new(mockUseCase)

	rec := serve(t, uc, &owner, "not-a-uuid", `{"status":"completed"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, &owner, uuid.NewString(), `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, &owner, uuid.NewString(), `{"requestedDate":"20/10/2025"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, nil, uuid.NewString(), `{"status":"completed"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
