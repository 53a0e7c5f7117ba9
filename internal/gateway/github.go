// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/activity-box/internal/domain"
)

// EventSource lists the public activity of a GitHub user.
type EventSource interface {
	ListPublicEvents(ctx context.Context, username string, pageSize int) ([]domain.ActivityEvent, error)
}

// SnippetStore reads and overwrites a gist.
type SnippetStore interface {
	FetchSnippet(ctx context.Context, id string) (*domain.Snippet, error)
	UpdateSnippet(ctx context.Context, id, filename, content string) error
}

// GitHubGateway implements EventSource and SnippetStore on top of the GitHub API.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *slog.Logger
}

// gistFilesQuery resolves a gist owned by the token's user.
// The GraphQL files list keeps the gist's own file order, unlike the REST
// files object.
type gistFilesQuery struct {
	Viewer struct {
		Gist struct {
			Name  githubv4.String
			Files []struct {
				Name githubv4.String
				Text githubv4.String
			}
		} `graphql:"gist(name: $name)"`
	}
}

// Options configures the HTTP stack of a GitHubGateway.
type Options struct {
	// BaseURL points the gateway at a GitHub Enterprise Server, e.g.
	// https://github.example.com/. Empty means github.com.
	BaseURL string
	// WaitRateLimit makes requests sleep through secondary rate limits
	// instead of failing.
	WaitRateLimit bool
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an anonymous client, which can only read public data.
func NewGitHubGateway(token string, opts Options, logger *slog.Logger) (*GitHubGateway, error) {
	var base http.RoundTripper = http.DefaultTransport
	if opts.WaitRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create rate limit waiter")
		}
		base = rateLimitWaiter
	}
	httpClient := &http.Client{Transport: base}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient.Transport = &oauth2.Transport{
			Base:   base,
			Source: ts,
		}
	}

	restClient := github.NewClient(httpClient)
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.BaseURL != "" {
		var err error
		restClient, err = restClient.WithEnterpriseURLs(opts.BaseURL, opts.BaseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL", goerr.V("base_url", opts.BaseURL))
		}
		graphqlClient = githubv4.NewEnterpriseClient(enterpriseGraphQLURL(opts.BaseURL), httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// enterpriseGraphQLURL maps a GHES base URL to its GraphQL endpoint.
func enterpriseGraphQLURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/api/graphql"
}

// ListPublicEvents fetches a single page of the user's public events, newest first.
func (g *GitHubGateway) ListPublicEvents(ctx context.Context, username string, pageSize int) ([]domain.ActivityEvent, error) {
	g.logger.Debug("Fetching public events", slog.String("username", username), slog.Int("page_size", pageSize))
	opts := &github.ListOptions{PerPage: pageSize}
	events, _, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list public events", goerr.V("username", username))
	}

	activity := make([]domain.ActivityEvent, 0, len(events))
	for _, e := range events {
		ev, err := toActivityEvent(e)
		if err != nil {
			return nil, err
		}
		activity = append(activity, ev)
	}
	g.logger.Debug("Fetched public events", slog.String("username", username), slog.Int("count", len(activity)))
	return activity, nil
}

// FetchSnippet returns the gist's files in the order GitHub reports them.
func (g *GitHubGateway) FetchSnippet(ctx context.Context, id string) (*domain.Snippet, error) {
	g.logger.Debug("Fetching gist", slog.String("gist_id", id))
	var q gistFilesQuery
	variables := map[string]interface{}{"name": githubv4.String(id)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, goerr.Wrap(err, "failed to execute GraphQL query for gist", goerr.V("gist_id", id))
	}
	// A missing gist decodes as null, leaving every field empty.
	if q.Viewer.Gist.Name == "" {
		return nil, goerr.New("gist not found; it must belong to the owner of the access token", goerr.V("gist_id", id))
	}

	snippet := &domain.Snippet{ID: id}
	for _, f := range q.Viewer.Gist.Files {
		snippet.Files = append(snippet.Files, domain.SnippetFile{
			Name:    string(f.Name),
			Content: string(f.Text),
		})
	}
	return snippet, nil
}

// UpdateSnippet replaces the whole content of one gist file.
func (g *GitHubGateway) UpdateSnippet(ctx context.Context, id, filename, content string) error {
	g.logger.Debug("Updating gist", slog.String("gist_id", id), slog.String("filename", filename))
	gist := &github.Gist{
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(filename): {Content: github.String(content)},
		},
	}
	if _, _, err := g.restClient.Gists.Edit(ctx, id, gist); err != nil {
		return goerr.Wrap(err, "failed to edit gist", goerr.V("gist_id", id), goerr.V("filename", filename))
	}
	return nil
}
