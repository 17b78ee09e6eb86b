package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/galvital/YogaMoves/domain"
)

// RefreshTokenRepositoryImpl implements domain.RefreshTokenRepository using
// GORM. Rows here are the revocation list: a refresh token without a live
// row is rejected even while cryptographically valid.
type RefreshTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBRefreshToken represents the database model for RefreshToken
type DBRefreshToken struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;size:36;not null"`
	Token     string `gorm:"uniqueIndex;size:512;not null"`
	ExpiresAt string `gorm:"size:40;not null"`
	CreatedAt string `gorm:"size:40"`
}

// TableName returns the table name for GORM
func (DBRefreshToken) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) domain.RefreshTokenRepository {
	return &RefreshTokenRepositoryImpl{db: db}
}

// Create implements domain.RefreshTokenRepository. Multiple live rows per
// user are fine (multi-device).
func (r *RefreshTokenRepositoryImpl) Create(ctx context.Context, token *domain.RefreshToken) error {
	if token.CreatedAt == "" {
		token.CreatedAt = nowISO()
	}
	return r.db.WithContext(ctx).Create(r.domainToDB(token)).Error
}

// FindValid implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) FindValid(ctx context.Context, token, nowISO string) (*domain.RefreshToken, error) {
	var dbToken DBRefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, nowISO).
		First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrTokenRevoked
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// DeleteByToken implements domain.RefreshTokenRepository. Deleting an absent
// token is not an error; logout stays idempotent.
func (r *RefreshTokenRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&DBRefreshToken{}).Error
}

// DeleteByUser implements domain.RefreshTokenRepository
func (r *RefreshTokenRepositoryImpl) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&DBRefreshToken{}).Error
}

func (r *RefreshTokenRepositoryImpl) domainToDB(t *domain.RefreshToken) *DBRefreshToken {
	return &DBRefreshToken{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}

func (r *RefreshTokenRepositoryImpl) dbToDomain(t *DBRefreshToken) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}
