// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/naka-gawa/activity-box/internal/domain"
	"github.com/naka-gawa/activity-box/internal/gateway"
)

// EventPageSize is the number of events requested from the activity feed.
const EventPageSize = 100

// Updater is the use case for refreshing the activity gist.
// It runs the fetch, format and publish steps strictly in sequence.
type Updater struct {
	source    gateway.EventSource
	formatter *Formatter
	publisher *Publisher
	logger    *slog.Logger
}

// NewUpdater creates a new Updater instance. publisher may be nil when the
// Updater is only used to render content.
func NewUpdater(source gateway.EventSource, formatter *Formatter, publisher *Publisher, logger *slog.Logger) *Updater {
	return &Updater{
		source:    source,
		formatter: formatter,
		publisher: publisher,
		logger:    logger,
	}
}

// Render fetches the user's recent public events and formats them.
func (u *Updater) Render(ctx context.Context, username string) (string, error) {
	u.logger.Debug("Getting activity", slog.String("username", username))
	events, err := u.source.ListPublicEvents(ctx, username, EventPageSize)
	if err != nil {
		if goerr.HasTag(err, domain.ErrTagPayloadMalformed) {
			return "", err
		}
		return "", goerr.Wrap(err, "failed to fetch activity",
			goerr.T(domain.ErrTagSourceFetchFailed),
			goerr.V("username", username))
	}
	u.logger.Debug("Activity fetched", slog.String("username", username), slog.Int("events", len(events)))

	return u.formatter.Format(events), nil
}

// Update renders the user's activity and publishes it to the gist.
// Nothing is published if any step fails. It returns the published content.
func (u *Updater) Update(ctx context.Context, username string) (string, error) {
	if u.publisher == nil {
		return "", goerr.New("updater has no publisher")
	}
	content, err := u.Render(ctx, username)
	if err != nil {
		return "", err
	}
	if err := u.publisher.Publish(ctx, content); err != nil {
		return "", err
	}
	return content, nil
}
