// Package twitter fetches tweet texts by id from the Twitter REST API,
// pacing requests by the quota the API reports.
package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited is transient: the caller waits for the quota reset and
	// resumes.
	ErrRateLimited = errors.New("twitter: rate limit exceeded")
	// ErrUnavailable is permanent for the requested id (deleted, protected,
	// suspended).
	ErrUnavailable = errors.New("twitter: status unavailable")
	// ErrUnauthorized means the bearer token was rejected. It says nothing
	// about the requested id.
	ErrUnauthorized = errors.New("twitter: bearer token rejected")
)

const (
	defaultEndpoint = "https://api.twitter.com/1.1"
	statusResource  = "/statuses/show/:id"
	// FallbackInterval is used when the reported quota gives no usable pace.
	FallbackInterval = 5 * time.Second
)

// Status is the part of a tweet the pipeline keeps.
type Status struct {
	ID   string `json:"id_str"`
	Text string `json:"text"`
	// FullText is set for extended tweets.
	FullText string `json:"full_text"`
}

// Body returns the full text when present, else the short text.
func (s Status) Body() string {
	if s.FullText != "" {
		return s.FullText
	}
	return s.Text
}

type rateLimitResponse struct {
	Resources map[string]map[string]struct {
		Limit     int   `json:"limit"`
		Remaining int   `json:"remaining"`
		Reset     int64 `json:"reset"`
	} `json:"resources"`
}

type apiErrors struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Client talks to the status and rate-limit endpoints with a bearer token.
type Client struct {
	token    string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a client paced at one request per second until
// SetInterval is called with the API's own pace.
func NewClient(token string) *Client {
	return &Client{
		token:    token,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Available returns true if a bearer token is configured.
func (c *Client) Available() bool {
	return c.token != ""
}

// SetEndpoint points the client at another API root.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = strings.TrimSuffix(endpoint, "/")
}

// SetInterval sets the pause between status requests. A non-positive
// interval removes pacing.
func (c *Client) SetInterval(d time.Duration) {
	if d <= 0 {
		c.limiter.SetLimit(rate.Inf)
		return
	}
	c.limiter.SetLimit(rate.Every(d))
}

// SleepInterval spreads the remaining quota evenly until reset: the pause is
// ceil((reset-now)/remaining) whole seconds. With no quota left, or a reset
// already in the past, it falls back to FallbackInterval.
func SleepInterval(remaining int, reset, now time.Time) time.Duration {
	left := reset.Sub(now).Seconds()
	if remaining <= 0 || left <= 0 {
		return FallbackInterval
	}
	return time.Duration(math.Ceil(left/float64(remaining))) * time.Second
}

// GetStatus fetches one tweet. It waits for the pacing limiter first.
// Server errors are retried up to 3 times with backoff; a rate-limit answer
// returns ErrRateLimited and any other client error ErrUnavailable.
func (c *Client) GetStatus(ctx context.Context, id string) (Status, error) {
	q := url.Values{}
	q.Set("id", id)
	q.Set("include_entities", "false")
	q.Set("tweet_mode", "extended")

	var st Status
	if err := c.get(ctx, "/statuses/show.json?"+q.Encode(), true, &st); err != nil {
		return Status{}, fmt.Errorf("get status %s: %w", id, err)
	}
	if st.ID == "" {
		st.ID = id
	}
	return st, nil
}

// RateLimit returns the remaining status quota and its reset time.
func (c *Client) RateLimit(ctx context.Context) (remaining int, reset time.Time, err error) {
	var resp rateLimitResponse
	if err := c.get(ctx, "/application/rate_limit_status.json?resources=statuses", false, &resp); err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit status: %w", err)
	}
	lim, ok := resp.Resources["statuses"][statusResource]
	if !ok {
		return 0, time.Time{}, fmt.Errorf("rate limit status: no entry for %s", statusResource)
	}
	return lim.Remaining, time.Unix(lim.Reset, 0), nil
}

// get performs a GET with retry on 5xx, decoding a 200 body into out.
func (c *Client) get(ctx context.Context, path string, paced bool, out any) error {
	backoffs := []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

	var lastErr error
	for attempt := 0; attempt <= len(backoffs); attempt++ {
		if paced {
			if err := c.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("request cancelled: %w", ctx.Err())
			}
			return fmt.Errorf("request failed: %w", err)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		case isRateLimited(resp.StatusCode, body):
			return fmt.Errorf("%w (reset %s)", ErrRateLimited, resp.Header.Get("x-rate-limit-reset"))
		case resp.StatusCode == http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, apiMessage(body))
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("twitter returned status %d", resp.StatusCode)
		default:
			return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, apiMessage(body))
		}

		if attempt < len(backoffs) {
			select {
			case <-ctx.Done():
				return fmt.Errorf("request cancelled during retry: %w", ctx.Err())
			case <-time.After(backoffs[attempt]):
			}
		}
	}
	return fmt.Errorf("all retries exhausted: %w", lastErr)
}

func isRateLimited(status int, body []byte) bool {
	// error 88 is "Rate limit exceeded"
	if status == http.StatusTooManyRequests {
		return true
	}
	var e apiErrors
	if json.Unmarshal(body, &e) == nil {
		for _, x := range e.Errors {
			if x.Code == 88 || strings.Contains(x.Message, "Rate limit exceeded") {
				return true
			}
		}
	}
	return false
}

func apiMessage(body []byte) string {
	var e apiErrors
	if json.Unmarshal(body, &e) == nil && len(e.Errors) > 0 {
		return e.Errors[0].Message + " (code " + strconv.Itoa(e.Errors[0].Code) + ")"
	}
	return strings.TrimSpace(string(body))
}
