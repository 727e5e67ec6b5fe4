package respond_quote

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
	"github.com/LomaCotta/haulers-app-sub001/internal/integrations/rpc"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/quotes/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Respond(ctx context.Context, actor domain.Actor, quoteID uuid.UUID, req *models.RespondRequest) (*models.RespondResponse, error) {
	args := m.Called(ctx, actor, quoteID, req)
	resp, _ := args.Get(0).(*models.RespondResponse)
	return resp, args.Error(1)
}

func post(svc QuoteService, quoteID uuid.UUID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/quotes/{quoteId}/respond",
		NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/"+quoteID.String()+"/respond", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleAccepted(t *testing.T) {
	svc := new(mockService)
	quoteID := uuid.New()

	svc.On("Respond", mock.Anything, mock.Anything, quoteID, &models.RespondRequest{Decision: "accept"}).
		Return(&models.RespondResponse{QuoteID: quoteID, Decision: "accept", Message: "Quote accepted"}, nil)

	rec := post(svc, quoteID, `{"decision":"accept"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.RespondResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "accept", body.Decision)
	svc.AssertExpectations(t)
}

func TestHandleProcedureRefusal(t *testing.T) {
	svc := new(mockService)
	svc.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %s", quotes.ErrRejectedByProcedure, "Quote already answered"))

	rec := post(svc, uuid.New(), `{"decision":"reject"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Quote already answered", body.Details)
}

func TestHandlePlatformFailureHidesStoreText(t *testing.T) {
	svc := new(mockService)
	storeErr := fmt.Errorf("respond_to_quote: %w: code=23505: duplicate key value violates unique constraint", rpc.ErrPlatform)
	svc.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: Respond - procedure call failed: %v", quotes.ErrInternal, storeErr))

	rec := post(svc, uuid.New(), `{"decision":"accept"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "duplicate key")
	assert.NotContains(t, rec.Body.String(), "23505")
}

func TestHandleRespondErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{quotes.ErrQuoteNotFound, http.StatusNotFound},
		{quotes.ErrAccessDenied, http.StatusForbidden},
		{quotes.ErrQuoteNotActionable, http.StatusConflict},
		{quotes.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(mockService)
			svc.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, post(svc, uuid.New(), `{"decision":"accept"}`).Code)
		})
	}
}
