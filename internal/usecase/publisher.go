package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/naka-gawa/activity-box/internal/domain"
	"github.com/naka-gawa/activity-box/internal/gateway"
)

// Publisher overwrites the first file of a gist with new content.
type Publisher struct {
	store  gateway.SnippetStore
	gistID string
	logger *slog.Logger
}

// NewPublisher creates a Publisher for the gist identified by gistID.
func NewPublisher(store gateway.SnippetStore, gistID string, logger *slog.Logger) *Publisher {
	return &Publisher{
		store:  store,
		gistID: gistID,
		logger: logger,
	}
}

// Publish reads the gist to find its target file, then replaces that file's
// content. The write is only attempted if the read succeeds, and neither
// call is retried.
func (p *Publisher) Publish(ctx context.Context, content string) error {
	snippet, err := p.store.FetchSnippet(ctx, p.gistID)
	if err != nil {
		return goerr.Wrap(err, "failed to get gist",
			goerr.T(domain.ErrTagSnippetFetchFailed),
			goerr.V("gist_id", p.gistID))
	}
	if len(snippet.Files) == 0 {
		return goerr.New("gist has no files",
			goerr.T(domain.ErrTagSnippetFetchFailed),
			goerr.V("gist_id", p.gistID))
	}

	filename := snippet.Files[0].Name
	p.logger.Debug("Resolved gist file", slog.String("gist_id", p.gistID), slog.String("filename", filename))

	if err := p.store.UpdateSnippet(ctx, p.gistID, filename, content); err != nil {
		return goerr.Wrap(err, "failed to update gist",
			goerr.T(domain.ErrTagSnippetWriteFailed),
			goerr.V("gist_id", p.gistID),
			goerr.V("filename", filename))
	}
	p.logger.Info("Gist updated", slog.String("gist_id", p.gistID), slog.String("filename", filename))
	return nil
}
