package usecase

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/activity-box/internal/domain"
)

const (
	// DefaultMaxLines is the number of lines a pinned gist shows.
	DefaultMaxLines = 5
	// DefaultMaxLength is the width of a pinned gist line in monospace characters.
	DefaultMaxLength = 46

	ellipsis = "..."
)

// Formatter renders activity events into the text published to the gist.
// It performs no I/O and never fails.
type Formatter struct {
	maxLines  int
	maxLength int
	emoji     bool
}

// FormatterOption customizes a Formatter.
type FormatterOption func(*Formatter)

// WithMaxLines caps the number of output lines.
func WithMaxLines(n int) FormatterOption {
	return func(f *Formatter) { f.maxLines = n }
}

// WithMaxLength caps the width of every output line.
func WithMaxLength(n int) FormatterOption {
	return func(f *Formatter) { f.maxLength = n }
}

// WithEmoji prefixes every line with an emoji for its kind.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) { f.emoji = enabled }
}

// NewFormatter creates a Formatter with the pinned-gist defaults.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		maxLines:  DefaultMaxLines,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format turns events (newest first) into at most maxLines lines joined by
// newlines. Repeated identical lines are collapsed before the line budget is
// applied, so a burst of pushes costs a single line.
func (f *Formatter) Format(events []domain.ActivityEvent) string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		if !ev.Known() {
			continue
		}
		lines = append(lines, f.formatEvent(ev))
	}

	lines = collapseRuns(lines)

	out := make([]string, 0, f.maxLines)
	for _, line := range lines {
		if line == "" {
			continue
		}
		if len(out) == f.maxLines {
			break
		}
		out = append(out, truncate(line, f.maxLength))
	}
	return strings.Join(out, "\n")
}

// formatEvent renders one event. An empty result means the event is not
// worth showing.
func (f *Formatter) formatEvent(ev domain.ActivityEvent) string {
	repo := ev.RepoName
	switch p := ev.Payload.(type) {
	case domain.ForkPayload:
		return f.prefix("🔱", "Forked from "+repo)
	case domain.IssueCommentPayload:
		return f.prefix("🗣", fmt.Sprintf("Commented on #%d in %s", p.IssueNumber, repo))
	case domain.IssuesPayload:
		return f.prefix("❗", fmt.Sprintf("%s issue #%d in %s", capitalize(p.Action), p.IssueNumber, repo))
	case domain.PublicPayload:
		return f.prefix("💯", "Published "+repo)
	case domain.PullRequestPayload:
		if p.Merged {
			return f.prefix("🎉", fmt.Sprintf("Merged PR #%d in %s", p.Number, repo))
		}
		icon := "❌"
		if p.Action == "opened" {
			icon = "💪"
		}
		return f.prefix(icon, fmt.Sprintf("%s PR #%d in %s", capitalize(p.Action), p.Number, repo))
	case domain.PushPayload:
		return f.prefix("💾", "Pushed to "+repo)
	case domain.ReleasePayload:
		if p.Action != "published" {
			return ""
		}
		return f.prefix("✨", fmt.Sprintf("Released %s on %s", p.TagName, repo))
	case domain.WatchPayload:
		if p.Action != "started" {
			return ""
		}
		return f.prefix("⭐", "Starred "+repo)
	default:
		return ""
	}
}

func (f *Formatter) prefix(icon, line string) string {
	if !f.emoji {
		return line
	}
	return icon + " " + line
}

// collapseRuns replaces every run of two or more identical adjacent lines
// with a single line annotated with the run length. Only push lines carry
// the annotation; other repeated lines are simply deduplicated.
func collapseRuns(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		j := i + 1
		for j < len(lines) && lines[j] == lines[i] {
			j++
		}
		line := lines[i]
		if n := j - i; n > 1 {
			line = strings.Replace(line, "Pushed to", fmt.Sprintf("Pushed %dx to", n), 1)
		}
		out = append(out, line)
		i = j
	}
	return out
}

// capitalize upper-cases the first character and leaves the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// truncate shortens line to maxLength characters, ending in an ellipsis.
func truncate(line string, maxLength int) string {
	r := []rune(line)
	if len(r) <= maxLength {
		return line
	}
	return string(r[:maxLength-len(ellipsis)]) + ellipsis
}
