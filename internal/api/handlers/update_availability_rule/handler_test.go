package update_availability_rule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/availability/models"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type stubService struct {
	weekday time.Weekday
	input   *models.RuleInput
	err     error
}

func (s *stubService) UpdateRule(_ context.Context, _ domain.Actor, businessID uuid.UUID, weekday time.Weekday, in *models.RuleInput) (*models.RuleResponse, error) {
	s.weekday = weekday
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.RuleResponse{BusinessID: businessID, Weekday: int(weekday), MorningJobs: in.MorningJobs}, nil
}

const validBody = `{"morningJobs":4,"afternoonJobs":2,"morningStart":"08:00","morningEnd":"12:00","afternoonStart":"12:00","afternoonEnd":"17:00"}`

func put(svc AvailabilityService, weekday, body string, withActor bool) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/businesses/{businessId}/availability/rules/{weekday}",
		NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut,
		"/api/v1/businesses/"+uuid.NewString()+"/availability/rules/"+weekday, strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleUpdatesRule(t *testing.T) {
	svc := &stubService{}
	rec := put(svc, "2", validBody, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Tuesday, svc.weekday)
	require.NotNil(t, svc.input)
	assert.Equal(t, 4, svc.input.MorningJobs)
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, put(&stubService{}, "7", validBody, true).Code)
	assert.Equal(t, http.StatusUnauthorized, put(&stubService{}, "1", validBody, false).Code)
	assert.Equal(t, http.StatusBadRequest, put(&stubService{err: availability.ErrInvalidInput}, "1", validBody, true).Code)
	assert.Equal(t, http.StatusForbidden, put(&stubService{err: availability.ErrAccessDenied}, "1", validBody, true).Code)
	assert.Equal(t, http.StatusNotFound, put(&stubService{err: availability.ErrBusinessNotFound}, "1", validBody, true).Code)
	assert.Equal(t, http.StatusInternalServerError, put(&stubService{err: availability.ErrInternal}, "1", validBody, true).Code)
}
