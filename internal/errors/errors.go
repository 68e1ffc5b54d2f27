package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingParameter  = stderrors.New("username is required")
	ErrConfiguration     = stderrors.New("api key not configured")
	ErrNotFound          = stderrors.New("user not found")
	ErrCanvasUnavailable = stderrors.New("canvas not available")
)

// UpstreamError is returned when the directory service answers with a non-2xx status.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("directory service responded %d %s", e.Status, http.StatusText(e.Status))
}

// ImageLoadError wraps any failure to fetch or decode a source image.
type ImageLoadError struct {
	URL string
	Err error
}

func (e *ImageLoadError) Error() string {
	if e.Err == nil {
		return "failed to load image: " + e.URL
	}
	return fmt.Sprintf("failed to load image: %s: %v", e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

func Upstream(status int) error {
	return &UpstreamError{Status: status}
}

func ImageLoad(url string, err error) error {
	return &ImageLoadError{URL: url, Err: err}
}

// Re-exported so callers importing this package as "errors" keep the std helpers.
func Is(err, target error) bool     { return stderrors.Is(err, target) }
func As(err error, target any) bool { return stderrors.As(err, target) }
func New(text string) error         { return stderrors.New(text) }
