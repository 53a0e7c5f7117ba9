package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/naka-gawa/activity-box/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_Publish(t *testing.T) {
	t.Run("writes the first file in store order", func(t *testing.T) {
		store := new(mockSnippetStore)
		store.On("FetchSnippet", mock.Anything, "gist-1").Return(&domain.Snippet{
			ID: "gist-1",
			Files: []domain.SnippetFile{
				{Name: "zz-activity.md", Content: "old"},
				{Name: "aa-other.md", Content: "keep"},
			},
		}, nil)
		store.On("UpdateSnippet", mock.Anything, "gist-1", "zz-activity.md", "new content").Return(nil)

		err := NewPublisher(store, "gist-1", discardLogger()).Publish(context.Background(), "new content")

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("fetch failure never writes", func(t *testing.T) {
		store := new(mockSnippetStore)
		cause := errors.New("404 Not Found")
		store.On("FetchSnippet", mock.Anything, "gist-1").Return(nil, cause)

		err := NewPublisher(store, "gist-1", discardLogger()).Publish(context.Background(), "content")

		require.Error(t, err)
		assert.True(t, goerr.HasTag(err, domain.ErrTagSnippetFetchFailed))
		assert.ErrorIs(t, err, cause)
		store.AssertNotCalled(t, "UpdateSnippet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gist without files never writes", func(t *testing.T) {
		store := new(mockSnippetStore)
		store.On("FetchSnippet", mock.Anything, "gist-1").Return(&domain.Snippet{ID: "gist-1"}, nil)

		err := NewPublisher(store, "gist-1", discardLogger()).Publish(context.Background(), "content")

		require.Error(t, err)
		assert.True(t, goerr.HasTag(err, domain.ErrTagSnippetFetchFailed))
		store.AssertNotCalled(t, "UpdateSnippet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("write failure is reported once", func(t *testing.T) {
		store := new(mockSnippetStore)
		cause := errors.New("422 Validation Failed")
		store.On("FetchSnippet", mock.Anything, "gist-1").Return(&domain.Snippet{
			ID:    "gist-1",
			Files: []domain.SnippetFile{{Name: "activity"}},
		}, nil)
		store.On("UpdateSnippet", mock.Anything, "gist-1", "activity", "content").Return(cause).Once()

		err := NewPublisher(store, "gist-1", discardLogger()).Publish(context.Background(), "content")

		require.Error(t, err)
		assert.True(t, goerr.HasTag(err, domain.ErrTagSnippetWriteFailed))
		assert.False(t, goerr.HasTag(err, domain.ErrTagSnippetFetchFailed))
		assert.ErrorIs(t, err, cause)
		store.AssertNumberOfCalls(t, "UpdateSnippet", 1)
	})
}
