package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/galvital/YogaMoves/domain"
	"github.com/galvital/YogaMoves/internal/config"
	"github.com/galvital/YogaMoves/internal/infrastructure/auth"
	"github.com/galvital/YogaMoves/internal/infrastructure/database"
	"github.com/galvital/YogaMoves/internal/infrastructure/notifications"
	"github.com/galvital/YogaMoves/internal/infrastructure/repositories"
	"github.com/galvital/YogaMoves/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo     domain.UserRepository
	SessionRepo  domain.SessionRepository
	ResponseRepo domain.ResponseRepository
	OTPRepo      domain.OTPRepository
	RefreshRepo  domain.RefreshTokenRepository

	// Services
	TokenSvc        domain.TokenService
	OAuthProvider   domain.OAuthProvider
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	RosterSvc       domain.RosterService
	ScheduleSvc     domain.ScheduleService
	AttendanceSvc   domain.AttendanceService
	ReportSvc       domain.ReportService
}

// NewContainer opens the production database and redis and wires everything
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	return NewContainerWithDB(cfg, logger, gdb, rdb.Client)
}

// NewContainerWithDB wires the dependency graph on top of pre-opened stores.
// Tests use it with sqlite and a miniredis-backed client.
func NewContainerWithDB(cfg *config.Config, logger *zap.Logger, gdb *gorm.DB, rdb *redis.Client) (*Container, error) {
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          gdb,
		RedisClient: rdb,
		Casbin:      cas,
	}

	c.UserRepo = repositories.NewUserRepository(gdb)
	c.SessionRepo = repositories.NewSessionRepository(gdb)
	c.ResponseRepo = repositories.NewResponseRepository(gdb)
	c.OTPRepo = repositories.NewOTPRepository(gdb)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(gdb)

	c.TokenSvc = auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.OAuthProvider = auth.NewGoogleOAuthProvider(cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirect)
	c.NotificationSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.NotificationSvc, rdb, logger, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.RefreshRepo, c.TokenSvc, c.OTPSvc, c.OAuthProvider, cfg.AdminEmail, cfg.RefreshTTL)
	c.RosterSvc = services.NewRosterService(c.UserRepo, c.ResponseRepo, c.RefreshRepo, c.OTPRepo)
	c.ScheduleSvc = services.NewScheduleService(c.SessionRepo, c.ResponseRepo, c.UserRepo)
	c.AttendanceSvc = services.NewAttendanceService(c.SessionRepo, c.ResponseRepo, c.UserRepo)
	c.ReportSvc = services.NewReportService(c.SessionRepo, c.ResponseRepo, c.UserRepo)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
