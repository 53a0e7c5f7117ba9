package gateway

import (
	"github.com/google/go-github/v62/github"
	"github.com/m-mizutani/goerr/v2"

	"github.com/naka-gawa/activity-box/internal/domain"
)

// toActivityEvent converts a REST event into the domain representation.
// Event types without a rendering rule become UnknownPayload and their
// payload is never decoded. A known type missing a field the renderer
// needs is an upstream contract change and fails the whole run.
func toActivityEvent(e *github.Event) (domain.ActivityEvent, error) {
	ev := domain.ActivityEvent{
		Type:     e.GetType(),
		RepoName: e.GetRepo().GetName(),
		Payload:  domain.UnknownPayload{},
	}
	switch ev.Type {
	case "ForkEvent", "IssueCommentEvent", "IssuesEvent", "PublicEvent",
		"PullRequestEvent", "PushEvent", "ReleaseEvent", "WatchEvent":
	default:
		return ev, nil
	}

	if e.RawPayload == nil {
		return ev, malformed(ev, "payload")
	}
	raw, err := e.ParsePayload()
	if err != nil {
		return ev, goerr.Wrap(err, "failed to parse event payload",
			goerr.T(domain.ErrTagPayloadMalformed),
			goerr.V("type", ev.Type),
			goerr.V("id", e.GetID()))
	}

	switch p := raw.(type) {
	case *github.ForkEvent:
		ev.Payload = domain.ForkPayload{}
	case *github.IssueCommentEvent:
		if p.Issue == nil || p.Issue.Number == nil {
			return ev, malformed(ev, "issue.number")
		}
		ev.Payload = domain.IssueCommentPayload{IssueNumber: p.Issue.GetNumber()}
	case *github.IssuesEvent:
		if p.Action == nil {
			return ev, malformed(ev, "action")
		}
		if p.Issue == nil || p.Issue.Number == nil {
			return ev, malformed(ev, "issue.number")
		}
		ev.Payload = domain.IssuesPayload{Action: p.GetAction(), IssueNumber: p.Issue.GetNumber()}
	case *github.PublicEvent:
		ev.Payload = domain.PublicPayload{}
	case *github.PullRequestEvent:
		if p.Action == nil {
			return ev, malformed(ev, "action")
		}
		if p.PullRequest == nil {
			return ev, malformed(ev, "pull_request")
		}
		if p.PullRequest.Number == nil && p.Number == nil {
			return ev, malformed(ev, "pull_request.number")
		}
		number := p.PullRequest.GetNumber()
		if p.PullRequest.Number == nil {
			number = p.GetNumber()
		}
		ev.Payload = domain.PullRequestPayload{
			Action: p.GetAction(),
			Number: number,
			Merged: p.PullRequest.GetMerged(),
		}
	case *github.PushEvent:
		ev.Payload = domain.PushPayload{}
	case *github.ReleaseEvent:
		if p.Action == nil {
			return ev, malformed(ev, "action")
		}
		// Only published releases render, and only those need a tag.
		if p.GetAction() == "published" && (p.Release == nil || p.Release.TagName == nil) {
			return ev, malformed(ev, "release.tag_name")
		}
		ev.Payload = domain.ReleasePayload{Action: p.GetAction(), TagName: p.GetRelease().GetTagName()}
	case *github.WatchEvent:
		if p.Action == nil {
			return ev, malformed(ev, "action")
		}
		ev.Payload = domain.WatchPayload{Action: p.GetAction()}
	default:
		return ev, goerr.New("unexpected payload type",
			goerr.T(domain.ErrTagPayloadMalformed),
			goerr.V("type", ev.Type))
	}
	return ev, nil
}

func malformed(ev domain.ActivityEvent, field string) error {
	return goerr.New("event payload is missing a required field",
		goerr.T(domain.ErrTagPayloadMalformed),
		goerr.V("type", ev.Type),
		goerr.V("repo", ev.RepoName),
		goerr.V("field", field))
}
