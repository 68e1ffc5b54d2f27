package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PayloadError marks a request body or query that failed binding.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string { return "invalid request payload: " + e.Err.Error() }

func (e *PayloadError) Unwrap() error { return e.Err }

func InvalidPayload(err error) error {
	return &PayloadError{Err: err}
}

// Status maps an error onto the HTTP status and public message returned to clients.
func Status(err error) (int, string) {
	var upstream *UpstreamError
	var imgErr *ImageLoadError
	var payload *PayloadError

	switch {
	case Is(err, ErrMissingParameter):
		return http.StatusBadRequest, "Username is required"
	case Is(err, ErrConfiguration):
		return http.StatusInternalServerError, "API key not configured"
	case Is(err, ErrNotFound):
		return http.StatusNotFound, "User not found"
	case As(err, &upstream):
		return upstream.Status, "Failed to search user"
	case As(err, &imgErr):
		return http.StatusBadGateway, "Failed to load profile image"
	case Is(err, ErrCanvasUnavailable):
		return http.StatusInternalServerError, "Canvas not available"
	case As(err, &payload):
		return http.StatusBadRequest, "invalid request payload"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// Err writes err as a JSON error body and aborts the request.
func Err(c *gin.Context, err error) {
	status, msg := Status(err)
	logger := log.Ctx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("request rejected")
	}

	body := gin.H{"error": msg}
	var payload *PayloadError
	if As(err, &payload) {
		body["detail"] = payload.Err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}

// RecoveryMiddleware turns handler panics into a 500 JSON response.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
