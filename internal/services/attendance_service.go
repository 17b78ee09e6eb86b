package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/galvital/YogaMoves/domain"
)

// AttendanceServiceImpl implements domain.AttendanceService: the per-pair
// response state machine. Participants may move freely between statuses
// while the session is in the future and the pair is not admin-locked; an
// admin override wins at any time and is one-way from the participant's
// perspective.
type AttendanceServiceImpl struct {
	sessionRepo  domain.SessionRepository
	responseRepo domain.ResponseRepository
	userRepo     domain.UserRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	sessionRepo domain.SessionRepository,
	responseRepo domain.ResponseRepository,
	userRepo domain.UserRepository,
) domain.AttendanceService {
	return &AttendanceServiceImpl{
		sessionRepo:  sessionRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
	}
}

// SubmitResponse implements domain.AttendanceService. The second return
// value reports whether a new row was created (true) or an existing one
// updated (false).
func (s *AttendanceServiceImpl) SubmitResponse(ctx context.Context, sessionID, participantID, status string) (*domain.Response, bool, error) {
	if !domain.ValidStatus(status) {
		return nil, false, domain.ErrInvalidStatus
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if sessionStarted(session.Datetime, time.Now()) {
		return nil, false, domain.ErrSessionStarted
	}

	existing, err := s.responseRepo.FindByPair(ctx, sessionID, participantID)
	if err != nil && err != domain.ErrResponseNotFound {
		return nil, false, err
	}

	created := existing == nil
	response := &domain.Response{
		SessionID:     sessionID,
		ParticipantID: participantID,
		Status:        status,
	}
	if existing != nil {
		if existing.AdminOverride {
			return nil, false, domain.ErrResponseLocked
		}
		response.ID = existing.ID
		response.CreatedAt = existing.CreatedAt
	} else {
		response.ID = uuid.NewString()
	}

	if err := s.responseRepo.Upsert(ctx, response); err != nil {
		return nil, false, err
	}
	return response, created, nil
}

// DeleteResponse implements domain.AttendanceService. Same guards as update:
// future session, existing row, not admin-locked.
func (s *AttendanceServiceImpl) DeleteResponse(ctx context.Context, sessionID, participantID string) error {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if sessionStarted(session.Datetime, time.Now()) {
		return domain.ErrSessionStarted
	}

	response, err := s.responseRepo.FindByPair(ctx, sessionID, participantID)
	if err != nil {
		return err
	}
	if response.AdminOverride {
		return domain.ErrResponseLocked
	}

	return s.responseRepo.Delete(ctx, response.ID)
}

// OverrideResponse implements domain.AttendanceService. Permitted at any
// time regardless of session timing or prior lock state; always sets the
// override flag.
func (s *AttendanceServiceImpl) OverrideResponse(ctx context.Context, sessionID, participantID, status string) (*domain.Response, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	if _, err := s.sessionRepo.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	participant, err := s.userRepo.FindByID(ctx, participantID)
	if err != nil || participant.Role != domain.RoleParticipant {
		return nil, domain.ErrParticipantNotFound
	}

	response := &domain.Response{
		SessionID:     sessionID,
		ParticipantID: participantID,
		Status:        status,
		AdminOverride: true,
	}
	existing, err := s.responseRepo.FindByPair(ctx, sessionID, participantID)
	if err != nil && err != domain.ErrResponseNotFound {
		return nil, err
	}
	if existing != nil {
		response.ID = existing.ID
		response.CreatedAt = existing.CreatedAt
	} else {
		response.ID = uuid.NewString()
	}

	if err := s.responseRepo.Upsert(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

// ListSessionsForParticipant implements domain.AttendanceService
func (s *AttendanceServiceImpl) ListSessionsForParticipant(ctx context.Context, participantID string) ([]domain.ParticipantSessionView, error) {
	sessions, err := s.sessionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]string, len(sessions))
	for i := range sessions {
		sessionIDs[i] = sessions[i].ID
	}
	responses, err := s.responseRepo.ListBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	mine := make(map[string]*domain.Response)
	for i := range responses {
		if responses[i].ParticipantID == participantID {
			mine[responses[i].SessionID] = &responses[i]
		}
	}

	now := time.Now()
	views := make([]domain.ParticipantSessionView, len(sessions))
	for i, session := range sessions {
		views[i] = domain.ParticipantSessionView{
			Session:    session,
			MyResponse: toMyResponse(mine[session.ID]),
			CanEdit:    canEdit(&session, mine[session.ID], now),
		}
	}
	return views, nil
}

// GetSessionForParticipant implements domain.AttendanceService. Other
// participants' responses appear only when the session's visibility flag is
// set, and never include the caller's own row.
func (s *AttendanceServiceImpl) GetSessionForParticipant(ctx context.Context, sessionID, participantID string) (*domain.ParticipantSessionDetail, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	myResponse, err := s.responseRepo.FindByPair(ctx, sessionID, participantID)
	if err != nil && err != domain.ErrResponseNotFound {
		return nil, err
	}

	detail := &domain.ParticipantSessionDetail{
		ParticipantSessionView: domain.ParticipantSessionView{
			Session:    *session,
			MyResponse: toMyResponse(myResponse),
			CanEdit:    canEdit(session, myResponse, time.Now()),
		},
	}

	if session.ShowResponsesToParticipants {
		responses, err := s.responseRepo.ListBySession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		participants, err := s.userRepo.ListParticipants(ctx)
		if err != nil {
			return nil, err
		}
		names := make(map[string]string, len(participants))
		for _, p := range participants {
			names[p.ID] = p.Name
		}

		others := []domain.OtherResponse{}
		for _, resp := range responses {
			if resp.ParticipantID == participantID {
				continue
			}
			others = append(others, domain.OtherResponse{
				ID:              resp.ID,
				Status:          resp.Status,
				ParticipantName: names[resp.ParticipantID],
				UpdatedAt:       resp.UpdatedAt,
			})
		}
		detail.OtherResponses = others
	}

	return detail, nil
}

func toMyResponse(resp *domain.Response) *domain.MyResponse {
	if resp == nil {
		return nil
	}
	return &domain.MyResponse{
		ID:            resp.ID,
		Status:        resp.Status,
		AdminOverride: resp.AdminOverride,
		UpdatedAt:     resp.UpdatedAt,
	}
}
