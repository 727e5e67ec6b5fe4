package reject_edit_request

import (
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/editrequests/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Reject(ctx context.Context, actor domain.Actor, requestID uuid.UUID, in *models.RejectRequest) (*models.DecisionResponse, error) {
	args := m.Called(ctx, actor, requestID, in)
	resp, _ := args.Get(0).(*models.DecisionResponse)
	return resp, args.Error(1)
}

func post(svc EditRequestService, requestID uuid.UUID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/edit-requests/{requestId}/reject",
		NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/edit-requests/"+requestID.String()+"/reject", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRejectWithoutBody(t *testing.T) {
	svc := new(mockService)
	requestID := uuid.New()
	bookingID := uuid.New()

	svc.On("Reject", mock.Anything, mock.Anything, requestID, &models.RejectRequest{}).
		Return(&models.DecisionResponse{RequestID: requestID, BookingID: bookingID, Status: "rejected"}, nil)

	rec := post(svc, requestID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.DecisionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "rejected", body.Status)
	assert.Equal(t, bookingID, body.BookingID)
	svc.AssertExpectations(t)
}

func TestHandleProcedureRefusal(t *testing.T) {
	svc := new(mockService)
	requestID := uuid.New()

	svc.On("Reject", mock.Anything, mock.Anything, requestID, mock.Anything).
		Return(nil, fmt.Errorf("%w: %s", editrequests.ErrRejectedByProcedure, "Booking already started"))

	rec := post(svc, requestID, `{"reason":"dates clash"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Booking already started", body.Details)
}

func TestHandleDecisionErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{editrequests.ErrEditRequestNotFound, http.StatusNotFound},
		{editrequests.ErrAccessDenied, http.StatusForbidden},
		{editrequests.ErrAlreadyDecided, http.StatusConflict},
		{editrequests.ErrInvalidInput, http.StatusBadRequest},
		{editrequests.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(mockService)
			svc.On("Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, post(svc, uuid.New(), `{}`).Code)
		})
	}
}
