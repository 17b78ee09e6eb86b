package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc func(ctx context.Context, phone string) (*domain.OTPCode, error)
	VerifyFunc   func(ctx context.Context, phone, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate(ctx context.Context, phone string) (*domain.OTPCode, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, phone)
	}
	return &domain.OTPCode{PhoneNumber: phone, Code: "123456"}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, phone, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	return nil
}
