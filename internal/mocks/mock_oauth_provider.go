package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockOAuthProvider implements domain.OAuthProvider interface for testing
type MockOAuthProvider struct {
	AuthCodeURLFunc func() string
	FetchUserFunc   func(ctx context.Context, code string) (*domain.OAuthUserInfo, error)
}

// NewMockOAuthProvider creates a new MockOAuthProvider with default behaviors
func NewMockOAuthProvider() *MockOAuthProvider {
	return &MockOAuthProvider{}
}

func (m *MockOAuthProvider) AuthCodeURL() string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc()
	}
	return "https://accounts.example.com/auth"
}

func (m *MockOAuthProvider) FetchUser(ctx context.Context, code string) (*domain.OAuthUserInfo, error) {
	if m.FetchUserFunc != nil {
		return m.FetchUserFunc(ctx, code)
	}
	return nil, domain.ErrOAuthExchange
}
