package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fileupload/internal/domain"
)

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Store(ctx context.Context, file *domain.CandidateFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockUploadService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
