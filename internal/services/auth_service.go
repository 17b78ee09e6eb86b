package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/galvital/YogaMoves/domain"
	"github.com/galvital/YogaMoves/internal/phone"
)

// AuthServiceImpl implements domain.AuthService. Two login paths (Google for
// the admin, phone OTP for participants) converge on one token scheme: a
// short-lived access token plus a long-lived refresh token whose revocation
// record lives in the refresh_tokens table.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	refreshRepo domain.RefreshTokenRepository
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	oauth       domain.OAuthProvider
	adminEmail  string
	refreshTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	refreshRepo domain.RefreshTokenRepository,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	oauth domain.OAuthProvider,
	adminEmail string,
	refreshTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		oauth:       oauth,
		adminEmail:  adminEmail,
		refreshTTL:  refreshTTL,
	}
}

// GoogleAuthURL implements domain.AuthService
func (s *AuthServiceImpl) GoogleAuthURL() string {
	return s.oauth.AuthCodeURL()
}

// LoginWithGoogle implements domain.AuthService. The allow-listed email is
// the authorization gate; the provider subject id is the durable join key,
// so an email change on the provider side never forks the account.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (*domain.AuthResult, error) {
	info, err := s.oauth.FetchUser(ctx, code)
	if err != nil {
		return nil, err
	}

	if info.Email != s.adminEmail {
		return nil, domain.ErrEmailNotAllowed
	}

	user, err := s.userRepo.FindByGoogleID(ctx, info.ID)
	switch err {
	case nil:
		// Refresh profile fields on every login.
		user.Name = info.Name
		user.Email = info.Email
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update admin user: %w", err)
		}
	case domain.ErrUserNotFound:
		user = &domain.User{
			ID:       uuid.NewString(),
			Name:     info.Name,
			Email:    info.Email,
			GoogleID: info.ID,
			Role:     domain.RoleAdmin,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create admin user: %w", err)
		}
	default:
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RequestOTP implements domain.AuthService. OTP login never creates
// identities: the participant must already be provisioned by the admin.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, rawPhone string) (*domain.OTPCode, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindParticipantByPhone(ctx, canonical); err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}

	return s.otpSvc.Generate(ctx, canonical)
}

// VerifyOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, rawPhone, code string) (*domain.AuthResult, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	if err := s.otpSvc.Verify(ctx, canonical, code); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindParticipantByPhone(ctx, canonical)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Refresh implements domain.AuthService. The token must both verify against
// the refresh secret and still have a live row in the store; logout removes
// the row while the signature stays valid until natural expiry.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}

	if _, err := s.refreshRepo.FindValid(ctx, refreshToken, nowISO()); err != nil {
		return "", err
	}

	return s.tokenSvc.GenerateAccessToken(domain.TokenClaims{
		UserID:      claims.UserID,
		Role:        claims.Role,
		Email:       claims.Email,
		PhoneNumber: claims.PhoneNumber,
	})
}

// Logout implements domain.AuthService. Idempotent: an absent or unknown
// token is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.refreshRepo.DeleteByToken(ctx, refreshToken)
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	claims := domain.TokenClaims{
		UserID:      user.ID,
		Role:        user.Role,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL).Format(time.RFC3339),
	}
	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
