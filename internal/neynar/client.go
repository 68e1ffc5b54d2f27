package neynar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alexpaden/fartcaster/internal/config"
	"github.com/alexpaden/fartcaster/internal/errors"
	"github.com/alexpaden/fartcaster/internal/model"
)

const searchPath = "/v2/farcaster/user/search"

// Client queries the Neynar user directory.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func NewClient(cfg config.NeynarConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    &http.Client{},
	}
}

type searchResponse struct {
	Result *struct {
		Users []model.User `json:"users"`
	} `json:"result"`
}

// SearchUsers returns up to limit candidates for q in upstream order.
func (c *Client) SearchUsers(ctx context.Context, q string, limit int) ([]model.User, error) {
	if c.apiKey == "" {
		return nil, errors.ErrConfiguration
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(limit))
	endpoint := c.baseURL + searchPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search user %q: %w", q, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Ctx(ctx).Error().Int("status", resp.StatusCode).Str("q", q).Msg("neynar api error")
		return nil, errors.Upstream(resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if body.Result == nil {
		return nil, nil
	}
	return body.Result.Users, nil
}
