package domain

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of a single run. Every run-ending error
// carries exactly one of them.
var (
	ErrTagConfigMissing      = goerr.NewTag("config_missing")
	ErrTagSourceFetchFailed  = goerr.NewTag("source_fetch_failed")
	ErrTagSnippetFetchFailed = goerr.NewTag("snippet_fetch_failed")
	ErrTagSnippetWriteFailed = goerr.NewTag("snippet_write_failed")
	ErrTagPayloadMalformed   = goerr.NewTag("payload_malformed")
)
