package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	b, err := GetBytes(ctx, srv.Client(), srv.URL+"/ok", 16)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = GetBytes(ctx, srv.Client(), srv.URL+"/big", 16)
	assert.ErrorContains(t, err, "exceeds 16 bytes")

	_, err = GetBytes(ctx, srv.Client(), srv.URL+"/missing", 16)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}
