package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fileupload/internal/domain"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*domain.Session, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) IssueToken(subject, email string) (string, time.Time, error) {
	args := m.Called(subject, email)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockAuthService) RevokeToken(ctx context.Context, tokenString string) error {
	args := m.Called(ctx, tokenString)
	return args.Error(0)
}
