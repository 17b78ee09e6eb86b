package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/galvital/YogaMoves/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM.
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOTPCode represents the database model for OTPCode
type DBOTPCode struct {
	ID          string `gorm:"primaryKey;size:36"`
	PhoneNumber string `gorm:"index;size:32;not null"`
	Code        string `gorm:"size:6;not null"`
	ExpiresAt   string `gorm:"size:40;not null"`
	Used        bool   `gorm:"default:false"`
	CreatedAt   string `gorm:"size:40"`
}

// TableName returns the table name for GORM
func (DBOTPCode) TableName() string {
	return "otp_codes"
}

// NewOTPRepository creates a new OTP code repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// ReplaceForPhone implements domain.OTPRepository. Deleting prior rows and
// inserting the new code happen in one transaction so at most one active
// code exists per phone even under concurrent requests.
func (r *OTPRepositoryImpl) ReplaceForPhone(ctx context.Context, code *domain.OTPCode) error {
	if code.CreatedAt == "" {
		code.CreatedAt = nowISO()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone_number = ?", code.PhoneNumber).Delete(&DBOTPCode{}).Error; err != nil {
			return err
		}
		return tx.Create(r.domainToDB(code)).Error
	})
}

// FindValid implements domain.OTPRepository. A single lookup covers wrong
// code, expired, already used and unknown phone; the caller reports all four
// identically.
func (r *OTPRepositoryImpl) FindValid(ctx context.Context, phone, code, nowISO string) (*domain.OTPCode, error) {
	var dbCode DBOTPCode
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND code = ? AND used = ? AND expires_at > ?", phone, code, false, nowISO).
		First(&dbCode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrOTPInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

// MarkUsed implements domain.OTPRepository
func (r *OTPRepositoryImpl) MarkUsed(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&DBOTPCode{}).
		Where("id = ?", id).
		Update("used", true).Error
}

// DeleteByPhone implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByPhone(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Where("phone_number = ?", phone).
		Delete(&DBOTPCode{}).Error
}

func (r *OTPRepositoryImpl) domainToDB(c *domain.OTPCode) *DBOTPCode {
	return &DBOTPCode{
		ID:          c.ID,
		PhoneNumber: c.PhoneNumber,
		Code:        c.Code,
		ExpiresAt:   c.ExpiresAt,
		Used:        c.Used,
		CreatedAt:   c.CreatedAt,
	}
}

func (r *OTPRepositoryImpl) dbToDomain(c *DBOTPCode) *domain.OTPCode {
	return &domain.OTPCode{
		ID:          c.ID,
		PhoneNumber: c.PhoneNumber,
		Code:        c.Code,
		ExpiresAt:   c.ExpiresAt,
		Used:        c.Used,
		CreatedAt:   c.CreatedAt,
	}
}
