package mocks

import (
	"context"

	"github.com/galvital/YogaMoves/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	ReplaceForPhoneFunc func(ctx context.Context, code *domain.OTPCode) error
	FindValidFunc       func(ctx context.Context, phone, code, nowISO string) (*domain.OTPCode, error)
	MarkUsedFunc        func(ctx context.Context, id string) error
	DeleteByPhoneFunc   func(ctx context.Context, phone string) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) ReplaceForPhone(ctx context.Context, code *domain.OTPCode) error {
	if m.ReplaceForPhoneFunc != nil {
		return m.ReplaceForPhoneFunc(ctx, code)
	}
	return nil
}

func (m *MockOTPRepository) FindValid(ctx context.Context, phone, code, nowISO string) (*domain.OTPCode, error) {
	if m.FindValidFunc != nil {
		return m.FindValidFunc(ctx, phone, code, nowISO)
	}
	return nil, domain.ErrOTPInvalid
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id string) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteByPhone(ctx context.Context, phone string) error {
	if m.DeleteByPhoneFunc != nil {
		return m.DeleteByPhoneFunc(ctx, phone)
	}
	return nil
}
