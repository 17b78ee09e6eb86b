package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galvital/YogaMoves/internal/app"
)

func TestOTPLoginLifecycle(t *testing.T) {
	s := newTestSuite(t)
	adminTok := s.adminToken()

	danaID, danaTok, danaRefresh := enrollParticipant(s, adminTok, "Dana", "0501234567")

	t.Run("me returns the logged in participant", func(t *testing.T) {
		status, body := s.request(http.MethodGet, "/api/auth/me", danaTok, nil)
		require.Equal(t, http.StatusOK, status, "me should load: %v", body)
		user := obj(t, body, "user")
		assert.Equal(t, danaID, user["id"])
		assert.Equal(t, "participant", user["role"])
	})

	t.Run("refresh mints a new access token", func(t *testing.T) {
		status, body := s.request(http.MethodPost, "/api/auth/refresh", "", map[string]interface{}{
			"refreshToken": danaRefresh,
		})
		require.Equal(t, http.StatusOK, status, "refresh should succeed: %v", body)
		fresh := str(t, body, "accessToken")

		status, _ = s.request(http.MethodGet, "/api/auth/me", fresh, nil)
		assert.Equal(t, http.StatusOK, status, "refreshed token should authenticate")
	})

	t.Run("logout revokes the refresh token", func(t *testing.T) {
		status, body := s.request(http.MethodPost, "/api/auth/logout", "", map[string]interface{}{
			"refreshToken": danaRefresh,
		})
		require.Equal(t, http.StatusOK, status, "logout should succeed: %v", body)

		status, _ = s.request(http.MethodPost, "/api/auth/refresh", "", map[string]interface{}{
			"refreshToken": danaRefresh,
		})
		assert.Equal(t, http.StatusForbidden, status, "revoked token should not refresh")

		// Logout stays idempotent.
		status, _ = s.request(http.MethodPost, "/api/auth/logout", "", map[string]interface{}{
			"refreshToken": danaRefresh,
		})
		assert.Equal(t, http.StatusOK, status, "repeat logout should succeed")
	})
}

func TestOTPRequestGuards(t *testing.T) {
	s := newTestSuite(t)
	adminTok := s.adminToken()

	status, body := s.request(http.MethodPost, "/api/admin/participants", adminTok, map[string]interface{}{
		"name":        "Dana",
		"phoneNumber": "0501234567",
	})
	require.Equal(t, http.StatusCreated, status, "participant creation should succeed: %v", body)

	t.Run("unknown phone is rejected before any send", func(t *testing.T) {
		status, _ := s.request(http.MethodPost, "/api/auth/otp/request", "", map[string]interface{}{
			"phoneNumber": "0529999999",
		})
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("malformed phone is rejected", func(t *testing.T) {
		status, _ := s.request(http.MethodPost, "/api/auth/otp/request", "", map[string]interface{}{
			"phoneNumber": "12345",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("resend window throttles until it elapses", func(t *testing.T) {
		status, _ := s.request(http.MethodPost, "/api/auth/otp/request", "", map[string]interface{}{
			"phoneNumber": "0501234567",
		})
		require.Equal(t, http.StatusOK, status, "first request should succeed")

		status, _ = s.request(http.MethodPost, "/api/auth/otp/request", "", map[string]interface{}{
			"phoneNumber": "0501234567",
		})
		assert.Equal(t, http.StatusTooManyRequests, status, "second request should throttle")

		s.Redis.FastForward(61 * time.Second)
		status, _ = s.request(http.MethodPost, "/api/auth/otp/request", "", map[string]interface{}{
			"phoneNumber": "0501234567",
		})
		assert.Equal(t, http.StatusOK, status, "request after the window should succeed")
	})

	t.Run("wrong code gets the uniform rejection", func(t *testing.T) {
		status, body := s.request(http.MethodPost, "/api/auth/otp/verify", "", map[string]interface{}{
			"phoneNumber": "0501234567",
			"code":        "000000",
		})
		require.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid or expired code", body["error"])
	})
}

func TestRoleGates(t *testing.T) {
	s := newTestSuite(t)
	adminTok := s.adminToken()
	_, danaTok, _ := enrollParticipant(s, adminTok, "Dana", "0501234567")

	t.Run("missing and malformed tokens are unauthorized", func(t *testing.T) {
		status, _ := s.request(http.MethodGet, "/api/admin/participants", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = s.request(http.MethodGet, "/api/admin/participants", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("participants cannot reach admin or report routes", func(t *testing.T) {
		status, _ := s.request(http.MethodGet, "/api/admin/participants", danaTok, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status, _ = s.request(http.MethodGet, "/api/reports/stats", danaTok, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("admins cannot use the participant surface", func(t *testing.T) {
		status, _ := s.request(http.MethodGet, "/api/participants/sessions", adminTok, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("reseeding does not duplicate policies", func(t *testing.T) {
		require.NoError(t, app.SeedPolicies(s.Container.Casbin))
		policies, err := s.Container.Casbin.E.GetPolicy()
		require.NoError(t, err)
		assert.Len(t, policies, 5)
	})
}
