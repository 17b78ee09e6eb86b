package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/galvital/YogaMoves/domain"
	"github.com/galvital/YogaMoves/internal/app"
	"github.com/galvital/YogaMoves/internal/config"
	"github.com/galvital/YogaMoves/internal/infrastructure/database"
)

// TestSuite boots the full HTTP stack on sqlite and miniredis. SMS delivery
// runs in mock mode because the twilio sender number is empty, and the OTP
// code comes back on the wire via the non-production debug field.
type TestSuite struct {
	t         *testing.T
	Server    *httptest.Server
	Container *app.Container
	Redis     *miniredis.Miniredis
}

func newTestSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named shared-cache in-memory DSN keeps every pooled connection on the
	// same database; a plain ":memory:" gives each connection its own.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "sqlite should open")
	require.NoError(t, database.AutoMigrate(gdb), "migration should succeed")

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Port:             "0",
		Env:              "test",
		FrontendURL:      "http://localhost:5173",
		JWTAccessSecret:  "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		JWTIssuer:        "yogamoves-test",
		AccessTTL:        time.Hour,
		RefreshTTL:       720 * time.Hour,
		OTP_TTL:          10 * time.Minute,
		OTP_Length:       6,
		OTP_ResendWindow: time.Minute,
		AdminEmail:       "owner@example.com",
		CasbinModelPath:  "../../../config/casbin_model.conf",
	}

	c, err := app.NewContainerWithDB(cfg, zap.NewNop(), gdb, rdb)
	require.NoError(t, err, "container should wire")
	require.NoError(t, app.SeedPolicies(c.Casbin), "policies should seed")

	server := httptest.NewServer(c.BuildRouter())
	t.Cleanup(server.Close)

	return &TestSuite{t: t, Server: server, Container: c, Redis: mr}
}

// request performs one JSON round trip against the test server. The decoded
// body is nil-safe for endpoints with empty responses.
func (s *TestSuite) request(method, path, token string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(s.t, err, "request body should encode")
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	require.NoError(s.t, err, "request should build")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err, "request should reach the test server")
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// adminToken provisions an admin row directly and mints an access token for
// it, sidestepping the Google exchange which needs a live upstream.
func (s *TestSuite) adminToken() string {
	s.t.Helper()

	admin := &domain.User{
		ID:       uuid.NewString(),
		Name:     "Studio Owner",
		Email:    "owner@example.com",
		GoogleID: "google-" + uuid.NewString(),
		Role:     domain.RoleAdmin,
	}
	require.NoError(s.t, s.Container.UserRepo.Create(context.Background(), admin))

	token, err := s.Container.TokenSvc.GenerateAccessToken(domain.TokenClaims{
		UserID: admin.ID,
		Role:   domain.RoleAdmin,
		Email:  admin.Email,
	})
	require.NoError(s.t, err, "admin token should mint")
	return token
}

func str(t *testing.T, m map[string]interface{}, key string) string {
	t.Helper()
	v, ok := m[key].(string)
	require.True(t, ok, "expected string field %q in %v", key, m)
	return v
}

func obj(t *testing.T, m map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	v, ok := m[key].(map[string]interface{})
	require.True(t, ok, "expected object field %q in %v", key, m)
	return v
}
