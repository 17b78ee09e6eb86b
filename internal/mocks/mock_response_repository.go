package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockResponseRepository implements domain.ResponseRepository interface for testing
type MockResponseRepository struct {
	UpsertFunc              func(ctx context.Context, response *domain.Response) error
	FindByPairFunc          func(ctx context.Context, sessionID, participantID string) (*domain.Response, error)
	ListBySessionFunc       func(ctx context.Context, sessionID string) ([]domain.Response, error)
	ListBySessionsFunc      func(ctx context.Context, sessionIDs []string) ([]domain.Response, error)
	CountsBySessionFunc     func(ctx context.Context, sessionID string) (domain.ResponseCounts, error)
	DeleteFunc              func(ctx context.Context, id string) error
	DeleteByParticipantFunc func(ctx context.Context, participantID string) error
	CountFunc               func(ctx context.Context) (int, error)
	CountJoiningFunc        func(ctx context.Context) (int, error)
}

// NewMockResponseRepository creates a new MockResponseRepository with default behaviors
func NewMockResponseRepository() *MockResponseRepository {
	return &MockResponseRepository{}
}

func (m *MockResponseRepository) Upsert(ctx context.Context, response *domain.Response) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, response)
	}
	return nil
}

func (m *MockResponseRepository) FindByPair(ctx context.Context, sessionID, participantID string) (*domain.Response, error) {
	if m.FindByPairFunc != nil {
		return m.FindByPairFunc(ctx, sessionID, participantID)
	}
	return nil, domain.ErrResponseNotFound
}

func (m *MockResponseRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Response, error) {
	if m.ListBySessionFunc != nil {
		return m.ListBySessionFunc(ctx, sessionID)
	}
	return nil, nil
}

func (m *MockResponseRepository) ListBySessions(ctx context.Context, sessionIDs []string) ([]domain.Response, error) {
	if m.ListBySessionsFunc != nil {
		return m.ListBySessionsFunc(ctx, sessionIDs)
	}
	return nil, nil
}

func (m *MockResponseRepository) CountsBySession(ctx context.Context, sessionID string) (domain.ResponseCounts, error) {
	if m.CountsBySessionFunc != nil {
		return m.CountsBySessionFunc(ctx, sessionID)
	}
	return domain.ResponseCounts{}, nil
}

func (m *MockResponseRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockResponseRepository) DeleteByParticipant(ctx context.Context, participantID string) error {
	if m.DeleteByParticipantFunc != nil {
		return m.DeleteByParticipantFunc(ctx, participantID)
	}
	return nil
}

func (m *MockResponseRepository) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockResponseRepository) CountJoining(ctx context.Context) (int, error) {
	if m.CountJoiningFunc != nil {
		return m.CountJoiningFunc(ctx)
	}
	return 0, nil
}
