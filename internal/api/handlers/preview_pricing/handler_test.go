package preview_pricing

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
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/pricing"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type stubPricing struct {
	details *domain.MovingDetails
	result  *pricing.Result
	err     error
}

func (s *stubPricing) Preview(_ context.Context, _ uuid.UUID, details *domain.MovingDetails) (*pricing.Result, error) {
	s.details = details
	return s.result, s.err
}

func post(svc PricingService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/businesses/{businessId}/pricing/preview",
		NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/businesses/"+uuid.NewString()+"/pricing/preview", strings.NewReader(body)))
	return rec
}

func TestHandlePreview(t *testing.T) {
	svc := &stubPricing{result: &pricing.Result{
		TeamSize:        2,
		HourlyRateCents: 12900,
		BillableHours:   3,
		RateSource:      domain.RateSourceExactTier,
		Breakdown:       domain.PriceBreakdown{BaseCents: 38700, StairsCents: 5000, TotalCents: 43700},
	}}

	rec := post(svc, `{"team_size":2,"estimated_hours":3,"stairs_flights":2,"packing_mode":"kit","packing_rooms":1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.details)
	assert.Equal(t, 2, svc.details.TeamSize)
	assert.Equal(t, domain.PackingFullKit, svc.details.PackingMode)

	var body PreviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(43700), body.TotalCents)
	assert.Equal(t, "$437.00", body.Total)
	assert.Equal(t, "tier", body.RateSource)
}

func TestHandlePreviewErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(&stubPricing{}, `{"stairs_flights":99}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(&stubPricing{}, ``).Code)
	assert.Equal(t, http.StatusBadRequest, post(&stubPricing{err: pricing.ErrNoRate}, `{"team_size":7}`).Code)
	assert.Equal(t, http.StatusNotFound, post(&stubPricing{err: pricing.ErrBusinessNotFound}, `{}`).Code)
	assert.Equal(t, http.StatusInternalServerError, post(&stubPricing{err: pricing.ErrInternal}, `{}`).Code)
}
