package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/galvital/YogaMoves/domain"
)

// ResponseRepositoryImpl implements domain.ResponseRepository using GORM.
// The (session_id, participant_id) unique index makes "at most one response
// per pair" a storage guarantee rather than a read-then-write convention;
// concurrent submits collapse into an update instead of a duplicate row.
type ResponseRepositoryImpl struct {
	db *gorm.DB
}

// DBResponse represents the database model for Response
type DBResponse struct {
	ID            string `gorm:"primaryKey;size:36"`
	SessionID     string `gorm:"uniqueIndex:idx_session_participant;size:36;not null"`
	ParticipantID string `gorm:"uniqueIndex:idx_session_participant;size:36;not null"`
	Status        string `gorm:"size:16;not null"`
	AdminOverride bool   `gorm:"default:false"`
	CreatedAt     string `gorm:"size:40"`
	UpdatedAt     string `gorm:"size:40"`
}

// TableName returns the table name for GORM
func (DBResponse) TableName() string {
	return "responses"
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db *gorm.DB) domain.ResponseRepository {
	return &ResponseRepositoryImpl{db: db}
}

// Upsert implements domain.ResponseRepository. A conflict on the pair index
// updates status, admin_override and updated_at in place.
func (r *ResponseRepositoryImpl) Upsert(ctx context.Context, response *domain.Response) error {
	now := nowISO()
	if response.CreatedAt == "" {
		response.CreatedAt = now
	}
	response.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "participant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "admin_override", "updated_at"}),
		}).
		Create(r.domainToDB(response)).Error
}

// FindByPair implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) FindByPair(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
	var dbResponse DBResponse
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND participant_id = ?", sessionID, participantID).
		First(&dbResponse).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrResponseNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbResponse), nil
}

// ListBySession implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) ListBySession(ctx context.Context, sessionID string) ([]domain.Response, error) {
	var dbResponses []DBResponse
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&dbResponses).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbResponses), nil
}

// ListBySessions implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) ListBySessions(ctx context.Context, sessionIDs []string) ([]domain.Response, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var dbResponses []DBResponse
	err := r.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Find(&dbResponses).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainSlice(dbResponses), nil
}

// CountsBySession implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) CountsBySession(ctx context.Context, sessionID string) (domain.ResponseCounts, error) {
	var rows []struct {
		Status string
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&DBResponse{}).
		Select("status, count(*) as count").
		Where("session_id = ?", sessionID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return domain.ResponseCounts{}, err
	}

	var counts domain.ResponseCounts
	for _, row := range rows {
		switch row.Status {
		case domain.StatusJoining:
			counts.Joining = row.Count
		case domain.StatusNotJoining:
			counts.NotJoining = row.Count
		case domain.StatusMaybe:
			counts.Maybe = row.Count
		}
	}
	return counts, nil
}

// Delete implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBResponse{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrResponseNotFound
	}
	return nil
}

// DeleteByParticipant implements domain.ResponseRepository; used when an
// admin removes a participant entirely.
func (r *ResponseRepositoryImpl) DeleteByParticipant(ctx context.Context, participantID string) error {
	return r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Delete(&DBResponse{}).Error
}

// Count implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBResponse{}).Count(&count).Error
	return int(count), err
}

// CountJoining implements domain.ResponseRepository
func (r *ResponseRepositoryImpl) CountJoining(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBResponse{}).
		Where("status = ?", domain.StatusJoining).
		Count(&count).Error
	return int(count), err
}

func (r *ResponseRepositoryImpl) toDomainSlice(dbResponses []DBResponse) []domain.Response {
	responses := make([]domain.Response, len(dbResponses))
	for i := range dbResponses {
		responses[i] = *r.dbToDomain(&dbResponses[i])
	}
	return responses
}

func (r *ResponseRepositoryImpl) domainToDB(resp *domain.Response) *DBResponse {
	return &DBResponse{
		ID:            resp.ID,
		SessionID:     resp.SessionID,
		ParticipantID: resp.ParticipantID,
		Status:        resp.Status,
		AdminOverride: resp.AdminOverride,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}

func (r *ResponseRepositoryImpl) dbToDomain(resp *DBResponse) *domain.Response {
	return &domain.Response{
		ID:            resp.ID,
		SessionID:     resp.SessionID,
		ParticipantID: resp.ParticipantID,
		Status:        resp.Status,
		AdminOverride: resp.AdminOverride,
		CreatedAt:     resp.CreatedAt,
		UpdatedAt:     resp.UpdatedAt,
	}
}
