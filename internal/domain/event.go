// Package domain contains the core data structures and domain logic for the application.
package domain

// ActivityEvent is one entry of a user's public activity feed.
// Events arrive newest first and are never modified after they are fetched.
type ActivityEvent struct {
	Type     string
	RepoName string
	Payload  Payload
}

// Payload holds the kind-specific fields of an event.
// The set of implementations is closed; anything the application does not
// render is represented by UnknownPayload.
type Payload interface {
	isPayload()
}

// ForkPayload is a repository fork.
type ForkPayload struct{}

// IssueCommentPayload is a comment on an issue or pull request.
type IssueCommentPayload struct {
	IssueNumber int
}

// IssuesPayload is an issue being opened, closed or reopened.
type IssuesPayload struct {
	Action      string
	IssueNumber int
}

// PublicPayload is a private repository made public.
type PublicPayload struct{}

// PullRequestPayload is a pull request action. Merged is only meaningful
// when Action is "closed".
type PullRequestPayload struct {
	Action string
	Number int
	Merged bool
}

// PushPayload is a push to a repository.
type PushPayload struct{}

// ReleasePayload is a release action.
type ReleasePayload struct {
	Action  string
	TagName string
}

// WatchPayload is a star. GitHub reports it as action "started".
type WatchPayload struct {
	Action string
}

// UnknownPayload marks event types that are never rendered.
type UnknownPayload struct{}

func (ForkPayload) isPayload()         {}
func (IssueCommentPayload) isPayload() {}
func (IssuesPayload) isPayload()       {}
func (PublicPayload) isPayload()       {}
func (PullRequestPayload) isPayload()  {}
func (PushPayload) isPayload()         {}
func (ReleasePayload) isPayload()      {}
func (WatchPayload) isPayload()        {}
func (UnknownPayload) isPayload()      {}

// Known reports whether the event has a rendering rule.
func (e ActivityEvent) Known() bool {
	switch e.Payload.(type) {
	case nil, UnknownPayload:
		return false
	}
	return true
}
