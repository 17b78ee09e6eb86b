package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in the relational
// store (single-use, one active per phone); redis only carries the resend
// throttle window so rapid re-requests don't burn SMS credits.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	logger          *zap.Logger
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, logger *zap.Logger, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		logger:          logger,
		config:          config,
	}
}

// Generate implements domain.OTPService. phone must already be canonical.
// Issuing a new code deletes every prior code for the phone, so the previous
// code stops verifying the moment a new one is requested.
func (s *OTPServiceImpl) Generate(ctx context.Context, phone string) (*domain.OTPCode, error) {
	throttleKey := "otp:res:" + phone

	ttl, err := s.redisClient.TTL(ctx, throttleKey).Result()
	if err == nil && ttl > 0 {
		return nil, domain.ErrOTPThrottle
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	otp := &domain.OTPCode{
		ID:          uuid.NewString(),
		PhoneNumber: phone,
		Code:        code,
		ExpiresAt:   time.Now().UTC().Add(s.config.TTL).Format(time.RFC3339),
		Used:        false,
	}

	if err := s.otpRepo.ReplaceForPhone(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.redisClient.Set(ctx, throttleKey, 1, s.config.ResendWindow).Err(); err != nil {
		s.logger.Warn("otp resend throttle not set", zap.Error(err))
	}

	// Delivery is fire-and-forget: a failed SMS is logged, the stored code
	// stays valid, and the caller's response is not blocked.
	message := fmt.Sprintf("Your YogaMoves verification code is: %s", code)
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		s.logger.Error("otp sms delivery failed", zap.String("phone", phone), zap.Error(err))
	}

	return otp, nil
}

// Verify implements domain.OTPService. Wrong code, expired code, already
// used code and unknown phone all fail with the same error so callers cannot
// probe code state. A matched code is consumed before anything else happens.
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string) error {
	otp, err := s.otpRepo.FindValid(ctx, phone, code, nowISO())
	if err != nil {
		return err
	}
	return s.otpRepo.MarkUsed(ctx, otp.ID)
}

// generateSecureCode generates a cryptographically random numeric code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
