package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/galvital/YogaMoves/domain"
	"github.com/galvital/YogaMoves/internal/phone"
)

// RosterServiceImpl implements domain.RosterService. Participants are always
// provisioned by the admin; there is no self-registration path.
type RosterServiceImpl struct {
	userRepo     domain.UserRepository
	responseRepo domain.ResponseRepository
	refreshRepo  domain.RefreshTokenRepository
	otpRepo      domain.OTPRepository
}

// NewRosterService creates a new roster service
func NewRosterService(
	userRepo domain.UserRepository,
	responseRepo domain.ResponseRepository,
	refreshRepo domain.RefreshTokenRepository,
	otpRepo domain.OTPRepository,
) domain.RosterService {
	return &RosterServiceImpl{
		userRepo:     userRepo,
		responseRepo: responseRepo,
		refreshRepo:  refreshRepo,
		otpRepo:      otpRepo,
	}
}

// CreateParticipant implements domain.RosterService. The canonical phone
// form is the uniqueness key, so "0501234567" and "+972501234567" collide.
func (s *RosterServiceImpl) CreateParticipant(ctx context.Context, name, rawPhone string) (*domain.User, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByPhone(ctx, canonical)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneTaken
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        name,
		PhoneNumber: canonical,
		Role:        domain.RoleParticipant,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}
	return user, nil
}

// ListParticipants implements domain.RosterService
func (s *RosterServiceImpl) ListParticipants(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListParticipants(ctx)
}

// UpdateParticipant implements domain.RosterService
func (s *RosterServiceImpl) UpdateParticipant(ctx context.Context, id, name, rawPhone string) (*domain.User, error) {
	canonical, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	// Existence first: an unknown id is a 404 even when the phone is taken.
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil || user.Role != domain.RoleParticipant {
		return nil, domain.ErrParticipantNotFound
	}

	other, err := s.userRepo.FindByPhone(ctx, canonical)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, domain.ErrPhoneTaken
	}

	user.Name = name
	user.PhoneNumber = canonical
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}
	return user, nil
}

// DeleteParticipant implements domain.RosterService. Responses, refresh
// tokens and pending OTP codes go with the participant.
func (s *RosterServiceImpl) DeleteParticipant(ctx context.Context, id string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil || user.Role != domain.RoleParticipant {
		return domain.ErrParticipantNotFound
	}

	if err := s.responseRepo.DeleteByParticipant(ctx, id); err != nil {
		return fmt.Errorf("failed to delete participant responses: %w", err)
	}
	if err := s.refreshRepo.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete participant refresh tokens: %w", err)
	}
	if user.PhoneNumber != "" {
		if err := s.otpRepo.DeleteByPhone(ctx, user.PhoneNumber); err != nil {
			return fmt.Errorf("failed to delete participant otp codes: %w", err)
		}
	}

	return s.userRepo.DeleteParticipant(ctx, id)
}
