package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/galvital/YogaMoves/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM.
// Inactive (soft-deleted) sessions are excluded from every read here; their
// responses stay behind for historical reporting.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for ClassSession
type DBSession struct {
	ID                          string `gorm:"primaryKey;size:36"`
	Title                       string `gorm:"size:200;not null"`
	Description                 string `gorm:"size:1000"`
	Date                        string `gorm:"index;size:10;not null"`
	Time                        string `gorm:"size:5;not null"`
	Datetime                    string `gorm:"index;size:40;not null"`
	CreatedByID                 string `gorm:"size:36;not null"`
	ShowResponsesToParticipants bool
	IsActive                    bool   `gorm:"index;default:true"`
	CreatedAt                   string `gorm:"size:40"`
	UpdatedAt                   string `gorm:"size:40"`
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new class session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.ClassSession) error {
	session.IsActive = true
	if session.CreatedAt == "" {
		session.CreatedAt = nowISO()
	}
	session.UpdatedAt = session.CreatedAt
	return r.db.WithContext(ctx).Create(r.domainToDB(session)).Error
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.ClassSession, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&dbSession).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// ListActive implements domain.SessionRepository, latest first
func (r *SessionRepositoryImpl) ListActive(ctx context.Context) ([]domain.ClassSession, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("datetime DESC").
		Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbSessions), nil
}

// ListActiveByDateRange implements domain.SessionRepository. Dates are ISO
// "2006-01-02" strings so the range comparison is lexicographic-safe.
func (r *SessionRepositoryImpl) ListActiveByDateRange(ctx context.Context, fromDate, toDate string) ([]domain.ClassSession, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND date >= ? AND date <= ?", true, fromDate, toDate).
		Order("date DESC").
		Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbSessions), nil
}

// ListActiveDates implements domain.SessionRepository; used by the month
// grouping in reports.
func (r *SessionRepositoryImpl) ListActiveDates(ctx context.Context) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("is_active = ?", true).
		Order("date DESC").
		Pluck("date", &dates).Error
	return dates, err
}

// CountActive implements domain.SessionRepository
func (r *SessionRepositoryImpl) CountActive(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return int(count), err
}

// CountActiveSince implements domain.SessionRepository
func (r *SessionRepositoryImpl) CountActiveSince(ctx context.Context, fromDate string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("is_active = ? AND date >= ?", true, fromDate).
		Count(&count).Error
	return int(count), err
}

// Update implements domain.SessionRepository
func (r *SessionRepositoryImpl) Update(ctx context.Context, session *domain.ClassSession) error {
	session.UpdatedAt = nowISO()
	result := r.db.WithContext(ctx).
		Model(&DBSession{}).
		Where("id = ? AND is_active = ?", session.ID, true).
		Updates(map[string]interface{}{
			"title":                          session.Title,
			"description":                    session.Description,
			"date":                           session.Date,
			"time":                           session.Time,
			"datetime":                       session.Datetime,
			"show_responses_to_participants": session.ShowResponsesToParticipants,
			"updated_at":                     session.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Deactivate implements domain.SessionRepository (soft delete)
func (r *SessionRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&DBSession{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": nowISO()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepositoryImpl) toDomainSlice(dbSessions []DBSession) []domain.ClassSession {
	sessions := make([]domain.ClassSession, len(dbSessions))
	for i := range dbSessions {
		sessions[i] = *r.dbToDomain(&dbSessions[i])
	}
	return sessions
}

func (r *SessionRepositoryImpl) domainToDB(s *domain.ClassSession) *DBSession {
	return &DBSession{
		ID:                          s.ID,
		Title:                       s.Title,
		Description:                 s.Description,
		Date:                        s.Date,
		Time:                        s.Time,
		Datetime:                    s.Datetime,
		CreatedByID:                 s.CreatedByID,
		ShowResponsesToParticipants: s.ShowResponsesToParticipants,
		IsActive:                    s.IsActive,
		CreatedAt:                   s.CreatedAt,
		UpdatedAt:                   s.UpdatedAt,
	}
}

func (r *SessionRepositoryImpl) dbToDomain(s *DBSession) *domain.ClassSession {
	return &domain.ClassSession{
		ID:                          s.ID,
		Title:                       s.Title,
		Description:                 s.Description,
		Date:                        s.Date,
		Time:                        s.Time,
		Datetime:                    s.Datetime,
		CreatedByID:                 s.CreatedByID,
		ShowResponsesToParticipants: s.ShowResponsesToParticipants,
		IsActive:                    s.IsActive,
		CreatedAt:                   s.CreatedAt,
		UpdatedAt:                   s.UpdatedAt,
	}
}
