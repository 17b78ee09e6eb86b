package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/internal/config"
	httpx "github.com/galvital/YogaMoves/internal/http"
	"github.com/galvital/YogaMoves/internal/http/handlers"
	"github.com/galvital/YogaMoves/internal/http/middleware"
	"github.com/galvital/YogaMoves/internal/infrastructure/auth"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	if err := SeedPolicies(c.Casbin); err != nil {
		return err
	}

	r := c.BuildRouter()

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// BuildRouter assembles handlers and middleware on top of the wired services.
func (c *Container) BuildRouter() *gin.Engine {
	production := c.Config.IsProduction()
	authH := handlers.NewAuthHandlers(c.AuthSvc, c.Logger, production)
	adminH := handlers.NewAdminHandlers(c.RosterSvc, c.ScheduleSvc, c.AttendanceSvc, c.Logger, production, c.Config.FrontendURL)
	partH := handlers.NewParticipantHandlers(c.AttendanceSvc, c.Logger, production)
	reportH := handlers.NewReportHandlers(c.ReportSvc, c.Logger, production)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	return httpx.BuildRouter(authH, adminH, partH, reportH, jwtMW, casbinMW)
}

// SeedPolicies installs the default role policies when the store is empty.
func SeedPolicies(cas *auth.CasbinService) error {
	policies, err := cas.E.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}

	defaults := [][]string{
		{"role_admin", "/api/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_admin", "/api/reports/*", "GET"},
		{"role_admin", "/api/auth/me", "GET"},
		{"role_participant", "/api/participants/*", "(GET|POST|DELETE)"},
		{"role_participant", "/api/auth/me", "GET"},
	}
	for _, p := range defaults {
		if _, err := cas.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}
	return cas.E.SavePolicy()
}
