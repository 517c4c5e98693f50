package fetch

import "errors"

// Sentinel errors for fetch operations.
var (
	ErrEmptyURL       = errors.New("url cannot be empty")
	ErrRequest        = errors.New("request failed")
	ErrHTTPStatus     = errors.New("unexpected HTTP status")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageLoad       = errors.New("page load failed")
	ErrNotImage       = errors.New("payload is not an image")
	ErrEmptyPayload   = errors.New("empty payload")
)
