package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockRefreshTokenRepository implements domain.RefreshTokenRepository interface for testing
type MockRefreshTokenRepository struct {
	CreateFunc        func(ctx context.Context, token *domain.RefreshToken) error
	FindValidFunc     func(ctx context.Context, token, nowISO string) (*domain.RefreshToken, error)
	DeleteByTokenFunc func(ctx context.Context, token string) error
	DeleteByUserFunc  func(ctx context.Context, userID string) error
}

// NewMockRefreshTokenRepository creates a new MockRefreshTokenRepository with default behaviors
func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{}
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *MockRefreshTokenRepository) FindValid(ctx context.Context, token, nowISO string) (*domain.RefreshToken, error) {
	if m.FindValidFunc != nil {
		return m.FindValidFunc(ctx, token, nowISO)
	}
	return nil, domain.ErrTokenRevoked
}

func (m *MockRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockRefreshTokenRepository) DeleteByUser(ctx context.Context, userID string) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}
