package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/galvital/YogaMoves/domain"
)

// ScheduleServiceImpl implements domain.ScheduleService. The stored Datetime
// is always rederived from Date+Time on create and edit, never trusted from
// a previous write.
type ScheduleServiceImpl struct {
	sessionRepo  domain.SessionRepository
	responseRepo domain.ResponseRepository
	userRepo     domain.UserRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	sessionRepo domain.SessionRepository,
	responseRepo domain.ResponseRepository,
	userRepo domain.UserRepository,
) domain.ScheduleService {
	return &ScheduleServiceImpl{
		sessionRepo:  sessionRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
	}
}

// CreateSession implements domain.ScheduleService
func (s *ScheduleServiceImpl) CreateSession(ctx context.Context, adminID string, input domain.SessionInput) (*domain.ClassSession, error) {
	datetime, err := combineDatetime(input.Date, input.Time)
	if err != nil {
		return nil, err
	}

	session := &domain.ClassSession{
		ID:                          uuid.NewString(),
		Title:                       input.Title,
		Description:                 input.Description,
		Date:                        input.Date,
		Time:                        input.Time,
		Datetime:                    datetime,
		CreatedByID:                 adminID,
		ShowResponsesToParticipants: input.ShowResponsesToParticipants,
		IsActive:                    true,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ListSessions implements domain.ScheduleService
func (s *ScheduleServiceImpl) ListSessions(ctx context.Context) ([]domain.SessionSummary, error) {
	sessions, err := s.sessionRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.SessionSummary, len(sessions))
	for i, session := range sessions {
		counts, err := s.responseRepo.CountsBySession(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = domain.SessionSummary{Session: session, ResponseCounts: counts}
	}
	return summaries, nil
}

// GetSessionDetail implements domain.ScheduleService. The returned response
// set is the union of stored responses and synthetic not-responded entries,
// one per participant, so the caller can always enumerate who hasn't answered.
func (s *ScheduleServiceImpl) GetSessionDetail(ctx context.Context, id string) (*domain.SessionDetail, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	participants, err := s.userRepo.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.SessionDetail{
		Session:   *session,
		Responses: buildResponseViews(participants, responses),
	}, nil
}

// UpdateSession implements domain.ScheduleService
func (s *ScheduleServiceImpl) UpdateSession(ctx context.Context, id string, input domain.SessionInput) (*domain.ClassSession, error) {
	datetime, err := combineDatetime(input.Date, input.Time)
	if err != nil {
		return nil, err
	}

	session := &domain.ClassSession{
		ID:                          id,
		Title:                       input.Title,
		Description:                 input.Description,
		Date:                        input.Date,
		Time:                        input.Time,
		Datetime:                    datetime,
		ShowResponsesToParticipants: input.ShowResponsesToParticipants,
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.sessionRepo.FindByID(ctx, id)
}

// DeleteSession implements domain.ScheduleService (soft delete; responses
// stay for historical reporting)
func (s *ScheduleServiceImpl) DeleteSession(ctx context.Context, id string) error {
	return s.sessionRepo.Deactivate(ctx, id)
}

// buildResponseViews resolves the tagged union once at the data boundary:
// every participant appears exactly once, responded or not. Downstream code
// branches on Responded, never on field nullability.
func buildResponseViews(participants []domain.User, responses []domain.Response) []domain.ResponseView {
	byParticipant := make(map[string]*domain.Response, len(responses))
	for i := range responses {
		byParticipant[responses[i].ParticipantID] = &responses[i]
	}

	views := make([]domain.ResponseView, 0, len(participants))
	for _, p := range participants {
		view := domain.ResponseView{
			ParticipantID:    p.ID,
			ParticipantName:  p.Name,
			ParticipantPhone: p.PhoneNumber,
		}
		if resp, ok := byParticipant[p.ID]; ok {
			view.Responded = true
			view.ResponseID = resp.ID
			view.Status = resp.Status
			view.AdminOverride = resp.AdminOverride
			view.UpdatedAt = resp.UpdatedAt
		}
		views = append(views, view)
	}
	return views
}
