package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/galvital/YogaMoves/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"size:100;not null"`
	Email       string `gorm:"uniqueIndex;size:255;default:null"`
	PhoneNumber string `gorm:"uniqueIndex;size:32;default:null"`
	GoogleID    string `gorm:"uniqueIndex;size:64;default:null"`
	Role        string `gorm:"index;size:32;not null"`
	CreatedAt   string `gorm:"size:40"`
	UpdatedAt   string `gorm:"size:40"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.CreatedAt == "" {
		user.CreatedAt = nowISO()
	}
	user.UpdatedAt = user.CreatedAt
	return r.db.WithContext(ctx).Create(r.domainToDB(user)).Error
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByGoogleID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

// FindByPhone implements domain.UserRepository. Matches any role; used for
// duplicate detection when provisioning participants.
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone_number = ?", phone)
}

// FindParticipantByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindParticipantByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone_number = ? AND role = ?", phone, domain.RoleParticipant)
}

// ListParticipants implements domain.UserRepository, newest first
func (r *UserRepositoryImpl) ListParticipants(ctx context.Context) ([]domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleParticipant).
		Order("created_at DESC").
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, len(dbUsers))
	for i := range dbUsers {
		users[i] = *r.dbToDomain(&dbUsers[i])
	}
	return users, nil
}

// CountParticipants implements domain.UserRepository
func (r *UserRepositoryImpl) CountParticipants(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("role = ?", domain.RoleParticipant).
		Count(&count).Error
	return int(count), err
}

// Update implements domain.UserRepository. Explicit columns only: the unique
// email/phone/google_id columns must stay NULL when unset, and a full-row
// save would rewrite them to empty strings that collide on the indexes.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = nowISO()
	values := map[string]interface{}{
		"name":       user.Name,
		"role":       user.Role,
		"updated_at": user.UpdatedAt,
	}
	if user.Email != "" {
		values["email"] = user.Email
	}
	if user.PhoneNumber != "" {
		values["phone_number"] = user.PhoneNumber
	}
	if user.GoogleID != "" {
		values["google_id"] = user.GoogleID
	}

	result := r.db.WithContext(ctx).
		Model(&DBUser{}).
		Where("id = ?", user.ID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteParticipant implements domain.UserRepository. Only rows with the
// participant role are deletable through this path.
func (r *UserRepositoryImpl) DeleteParticipant(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, domain.RoleParticipant).
		Delete(&DBUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, args...).First(&dbUser).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		GoogleID:    user.GoogleID,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:          dbUser.ID,
		Name:        dbUser.Name,
		Email:       dbUser.Email,
		PhoneNumber: dbUser.PhoneNumber,
		GoogleID:    dbUser.GoogleID,
		Role:        dbUser.Role,
		CreatedAt:   dbUser.CreatedAt,
		UpdatedAt:   dbUser.UpdatedAt,
	}
}
