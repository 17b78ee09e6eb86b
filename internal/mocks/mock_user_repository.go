package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                 func(ctx context.Context, user *domain.User) error
	FindByIDFunc               func(ctx context.Context, id string) (*domain.User, error)
	FindByGoogleIDFunc         func(ctx context.Context, googleID string) (*domain.User, error)
	FindByPhoneFunc            func(ctx context.Context, phone string) (*domain.User, error)
	FindParticipantByPhoneFunc func(ctx context.Context, phone string) (*domain.User, error)
	ListParticipantsFunc       func(ctx context.Context) ([]domain.User, error)
	CountParticipantsFunc      func(ctx context.Context) (int, error)
	UpdateFunc                 func(ctx context.Context, user *domain.User) error
	DeleteParticipantFunc      func(ctx context.Context, id string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	if m.FindByGoogleIDFunc != nil {
		return m.FindByGoogleIDFunc(ctx, googleID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindParticipantByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindParticipantByPhoneFunc != nil {
		return m.FindParticipantByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ListParticipants(ctx context.Context) ([]domain.User, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) CountParticipants(ctx context.Context) (int, error) {
	if m.CountParticipantsFunc != nil {
		return m.CountParticipantsFunc(ctx)
	}
	return 0, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) DeleteParticipant(ctx context.Context, id string) error {
	if m.DeleteParticipantFunc != nil {
		return m.DeleteParticipantFunc(ctx, id)
	}
	return nil
}
