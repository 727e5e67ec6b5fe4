package record_payment

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

	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/invoices/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) RecordPayment(ctx context.Context, actor domain.Actor, invoiceID uuid.UUID, req *models.PaymentRequest) (*models.InvoiceResponse, error) {
	args := m.Called(ctx, actor, invoiceID, req)
	resp, _ := args.Get(0).(*models.InvoiceResponse)
	return resp, args.Error(1)
}

func post(svc InvoiceService, invoiceID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/invoices/{invoiceId}/payments", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID+"/payments", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlePartialPayment(t *testing.T) {
	svc := new(mockService)
	invoiceID := uuid.New()

	svc.On("RecordPayment", mock.Anything, mock.Anything, invoiceID, &models.PaymentRequest{Amount: "100.00"}).
		Return(&models.InvoiceResponse{
			ID:           invoiceID,
			Status:       string(domain.InvoicePartiallyPaid),
			TotalCents:   25000,
			PaidCents:    10000,
			BalanceCents: 15000,
			Balance:      "$150.00",
		}, nil)

	rec := post(svc, invoiceID.String(), `{"amount":"100.00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.InvoiceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "partially_paid", body.Status)
	assert.Equal(t, int64(15000), body.BalanceCents)
	svc.AssertExpectations(t)
}

func TestHandlePaymentErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{invoices.ErrOverpayment, http.StatusBadRequest},
		{invoices.ErrInvalidInput, http.StatusBadRequest},
		{invoices.ErrInvalidTransition, http.StatusConflict},
		{invoices.ErrInvoiceNotFound, http.StatusNotFound},
		{invoices.ErrAccessDenied, http.StatusForbidden},
		{invoices.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(mockService)
			svc.On("RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, post(svc, uuid.NewString(), `{"amount":"5"}`).Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, post(new(mockService), "bad", `{"amount":"5"}`).Code)
}
