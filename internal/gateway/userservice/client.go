// Package userservice talks to the external user directory over HTTP.
//
// Endpoints used:
//
//	GET {base}/user/profiles            every profile
//	GET {base}/user/{id}                one profile
//	GET {base}/user/{id}/interests      interest labels of one user
package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/oggyb/muzz-matching/internal/config"
	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/matching"
)

const upstreamName = "user service"

// profileDTO is the wire shape of a profile. A missing
// sexual_orientation_id becomes matching.OrientationUnknown.
type profileDTO struct {
	ID          uint64   `json:"id"`
	Username    string   `json:"username"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Orientation *int     `json:"sexual_orientation_id"`
	Interests   []string `json:"interests"`
}

func (d profileDTO) toProfile() matching.Profile {
	orientation := matching.OrientationUnknown
	if d.Orientation != nil {
		orientation = matching.Orientation(*d.Orientation)
	}
	return matching.Profile{
		ID:          d.ID,
		Username:    d.Username,
		Age:         d.Age,
		Gender:      matching.Gender(strings.ToLower(d.Gender)),
		Orientation: orientation,
		Interests:   d.Interests,
	}
}

// Client implements matching.ProfileGateway against the user service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter replaces the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient builds a client for baseURL. rps <= 0 disables rate limiting.
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int, log *slog.Logger, opts ...Option) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig builds a client from the UserService config section.
func NewFromConfig(cfg *config.Config, log *slog.Logger) *Client {
	us := cfg.UserService
	return NewClient(us.URL, us.Timeout, us.RPS, us.Burst, log)
}

func (c *Client) GetProfile(ctx context.Context, userID uint64) (matching.Profile, error) {
	var dto profileDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/user/%d", userID), "user", userID, &dto); err != nil {
		return matching.Profile{}, err
	}
	if dto.ID == 0 {
		dto.ID = userID
	}
	return dto.toProfile(), nil
}

func (c *Client) ListProfiles(ctx context.Context) ([]matching.Profile, error) {
	var dtos []profileDTO
	if err := c.getJSON(ctx, "/user/profiles", "profiles", "all", &dtos); err != nil {
		return nil, err
	}
	out := make([]matching.Profile, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toProfile())
	}
	return out, nil
}

// GetInterests accepts either a bare JSON array of labels or an object
// with an "interests" field.
func (c *Client) GetInterests(ctx context.Context, userID uint64) ([]string, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, fmt.Sprintf("/user/%d/interests", userID), "user", userID, &raw); err != nil {
		return nil, err
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Interests []string `json:"interests"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, svcErr.Unavailable(upstreamName, fmt.Errorf("decode interests: %w", err))
	}
	return wrapped.Interests, nil
}

// getJSON performs a rate limited GET and decodes the body into out.
// 404 maps to NotFound(resource, id); any other failure is Unavailable.
func (c *Client) getJSON(ctx context.Context, path, resource string, id any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return svcErr.Unavailable(upstreamName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return svcErr.Unavailable(upstreamName, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("user service request failed", "path", path, "err", err)
		return svcErr.Unavailable(upstreamName, err)
	}
	defer resp.Body.Close()

	c.log.Debug("user service request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return svcErr.NotFound(resource, id)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return svcErr.Unavailable(upstreamName, fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return svcErr.Unavailable(upstreamName, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
