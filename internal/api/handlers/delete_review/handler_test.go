package delete_review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/LomaCotta/haulers-app-sub001/internal/api/middleware"
	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
	"github.com/LomaCotta/haulers-app-sub001/internal/service/reviews"
	"github.com/LomaCotta/haulers-app-sub001/pkg/logger"
)

type stubService struct {
	err error
}

func (s stubService) Delete(context.Context, domain.Actor, uuid.UUID) error { return s.err }

func del(svc ReviewService, actor *domain.Actor) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/reviews/{reviewId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reviews/"+uuid.NewString(), nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleDelete(t *testing.T) {
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	owner := domain.Actor{UserID: uuid.New(), Role: domain.RoleBusiness}

	assert.Equal(t, http.StatusNoContent, del(stubService{}, &admin).Code)
	assert.Equal(t, http.StatusForbidden, del(stubService{err: reviews.ErrAccessDenied}, &owner).Code)
	assert.Equal(t, http.StatusNotFound, del(stubService{err: reviews.ErrReviewNotFound}, &admin).Code)
	assert.Equal(t, http.StatusInternalServerError, del(stubService{err: reviews.ErrInternal}, &admin).Code)
	assert.Equal(t, http.StatusUnauthorized, del(stubService{}, nil).Code)
}
