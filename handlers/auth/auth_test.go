package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	token, expires, err := tokens.GenerateToken("device-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	deviceID, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "device-1", deviceID)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	token, _, err := tokens.GenerateToken("device-1")
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).ParseToken(token)
	assert.Error(t, err, "wrong secret")

	_, err = tokens.ParseToken("")
	assert.ErrorIs(t, err, ErrNoToken)

	expired := NewTokens("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateToken("device-1")
	require.NoError(t, err)
	_, err = tokens.ParseToken(old)
	assert.Error(t, err, "expired")
}

func TestTokens_EmptySecret(t *testing.T) {
	_, _, err := NewTokens("", time.Hour).GenerateToken("device-1")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	token, _, err := tokens.GenerateToken("device-7")
	require.NoError(t, err)

	var seen string
	h := tokens.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = DeviceID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "device-7", seen)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeviceHandler(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	h := DeviceHandler(tokens, zap.NewNop())

	t.Run("assigns an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/device", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DeviceResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.DeviceID)
		got, err := tokens.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.DeviceID, got)
	})

	t.Run("keeps a chosen id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/device", strings.NewReader(`{"device_id":"phone-42"}`)))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DeviceResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "phone-42", resp.DeviceID)
	})

	t.Run("rejects bad body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/device", strings.NewReader(`{`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects long id", func(t *testing.T) {
		body := `{"device_id":"` + strings.Repeat("x", MaxDeviceIDLength+1) + `"}`
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/device", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDecodeJSON(t *testing.T) {
	var v DeviceRequest

	rec := httptest.NewRecorder()
	assert.True(t, DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", nil), &v, true))
	assert.False(t, DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", nil), &v, false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	big := `{"device_id":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	assert.False(t, DecodeJSON(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big)), &v, false))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
