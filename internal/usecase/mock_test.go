package usecase

import (
	"context"

	"github.com/naka-gawa/activity-box/internal/domain"
	"github.com/stretchr/testify/mock"
)

// mockEventSource is a mock implementation of the gateway.EventSource interface.
type mockEventSource struct {
	mock.Mock
}

func (m *mockEventSource) ListPublicEvents(ctx context.Context, username string, pageSize int) ([]domain.ActivityEvent, error) {
	args := m.Called(ctx, username, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEvent), args.Error(1)
}

// mockSnippetStore is a mock implementation of the gateway.SnippetStore interface.
type mockSnippetStore struct {
	mock.Mock
}

func (m *mockSnippetStore) FetchSnippet(ctx context.Context, id string) (*domain.Snippet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snippet), args.Error(1)
}

func (m *mockSnippetStore) UpdateSnippet(ctx context.Context, id, filename, content string) error {
	args := m.Called(ctx, id, filename, content)
	return args.Error(0)
}
