package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/galvital/YogaMoves/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with independent secrets so compromise of one cannot forge the
// other; revocation lives in the refresh_tokens table, not here.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(claims domain.TokenClaims) (string, error) {
	return j.sign(claims, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(claims domain.TokenClaims) (string, error) {
	return j.sign(claims, j.refreshSecret, j.refreshTTL)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	return j.validate(token, j.accessSecret)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	return j.validate(token, j.refreshSecret)
}

func (j *JWTServiceImpl) sign(c domain.TokenClaims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": c.UserID,
		"role":   c.Role,
		"iss":    j.issuer,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	if c.Email != "" {
		claims["email"] = c.Email
	}
	if c.PhoneNumber != "" {
		claims["phoneNumber"] = c.PhoneNumber
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTServiceImpl) validate(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		// The parser validates exp itself, so expiry only ever surfaces
		// through its error chain.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	userID, ok := claims["userId"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}
	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	if phone, ok := claims["phoneNumber"].(string); ok {
		tokenClaims.PhoneNumber = phone
	}

	return tokenClaims, nil
}
