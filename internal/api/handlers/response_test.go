package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"crew"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "crew", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"crew","extra":1}`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestRespondErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondBadRequest(rec, "invalid booking update", "requested_slot must be morning or afternoon")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"invalid booking update","details":"requested_slot must be morning or afternoon"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondInternalError(rec)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": id.String()})
	got, err := PathUUID(req, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = PathUUID(req, "invoiceId")
	assert.Error(t, err)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": uuid.Nil.String()})
	_, err = PathUUID(req, "bookingId")
	assert.Error(t, err)
}

func TestProcedureMessage(t *testing.T) {
	sentinel := errors.New("operation rejected")
	err := fmt.Errorf("%w: %s", sentinel, "Quote has expired")

	assert.Equal(t, "Quote has expired", ProcedureMessage(err, sentinel))
}
