package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRevocationStore is a mock implementation of port.SessionRevocationStore.
type MockRevocationStore struct {
	mock.Mock
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}
