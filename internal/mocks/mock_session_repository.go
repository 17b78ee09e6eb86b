package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc                func(ctx context.Context, session *domain.ClassSession) error
	FindByIDFunc              func(ctx context.Context, id string) (*domain.ClassSession, error)
	ListActiveFunc            func(ctx context.Context) ([]domain.ClassSession, error)
	ListActiveByDateRangeFunc func(ctx context.Context, fromDate, toDate string) ([]domain.ClassSession, error)
	ListActiveDatesFunc       func(ctx context.Context) ([]string, error)
	CountActiveFunc           func(ctx context.Context) (int, error)
	CountActiveSinceFunc      func(ctx context.Context, fromDate string) (int, error)
	UpdateFunc                func(ctx context.Context, session *domain.ClassSession) error
	DeactivateFunc            func(ctx context.Context, id string) error
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.ClassSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*domain.ClassSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) ListActive(ctx context.Context) ([]domain.ClassSession, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionRepository) ListActiveByDateRange(ctx context.Context, fromDate, toDate string) ([]domain.ClassSession, error) {
	if m.ListActiveByDateRangeFunc != nil {
		return m.ListActiveByDateRangeFunc(ctx, fromDate, toDate)
	}
	return nil, nil
}

func (m *MockSessionRepository) ListActiveDates(ctx context.Context) ([]string, error) {
	if m.ListActiveDatesFunc != nil {
		return m.ListActiveDatesFunc(ctx)
	}
	return nil, nil
}

func (m *MockSessionRepository) CountActive(ctx context.Context) (int, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx)
	}
	return 0, nil
}

func (m *MockSessionRepository) CountActiveSince(ctx context.Context, fromDate string) (int, error) {
	if m.CountActiveSinceFunc != nil {
		return m.CountActiveSinceFunc(ctx, fromDate)
	}
	return 0, nil
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.ClassSession) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return nil
}
