package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LomaCotta/haulers-app-sub001/internal/domain"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthPutsActorInContext(t *testing.T) {
	userID := uuid.New()
	var got domain.Actor

	h := Auth(NewTokenParser(testSecret, ""), nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		got = actor
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, testSecret, validClaims(userID, "business")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, domain.RoleBusiness, got.Role)
}

func TestAuthRejects(t *testing.T) {
	userID := uuid.New()
	expired := validClaims(userID, "admin")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"bad signature":  "Bearer " + sign(t, "other-secret", validClaims(userID, "admin")),
		"expired":        "Bearer " + sign(t, testSecret, expired),
		"unknown role":   "Bearer " + sign(t, testSecret, validClaims(userID, "root")),
		"bad subject":    "Bearer " + sign(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}}),
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			called := false
			h := Auth(NewTokenParser(testSecret, ""), nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
