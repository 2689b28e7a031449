// Package api is the HTTP client for the catalog backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/zivolabs/zivo/internal/feed"
)

// PerPage is the fixed page size the backend serves.
const PerPage = 20

// Client talks to the catalog backend. All mutating calls carry an
// Idempotency-Key header so retries, including retries of requests whose
// response was lost, never double-apply.
type Client struct {
	baseURL string
	token   string
	userID  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a client for the backend at baseURL, authenticating
// as userID with token.
func NewClient(baseURL, token, userID string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		userID:  userID,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// UserID returns the user this client acts as.
func (c *Client) UserID() string { return c.userID }

// mediaListResponse is the envelope of GET /api/media.
type mediaListResponse struct {
	Data []feed.Item `json:"data"`
	Meta feed.Cursor `json:"meta"`
}

// ListMedia fetches one page of the catalog. An empty search term returns
// the unfiltered feed.
func (c *Client) ListMedia(ctx context.Context, page int, search string) (feed.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(PerPage))
	if search != "" {
		q.Set("search", search)
	}

	body, err := c.doWithRetry(ctx, http.MethodGet, "/api/media?"+q.Encode(), nil, "")
	if err != nil {
		return feed.Page{}, err
	}

	var resp mediaListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return feed.Page{}, fmt.Errorf("api: failed to parse media list: %w", err)
	}
	if resp.Meta.Current == 0 {
		return feed.Page{}, fmt.Errorf("api: media list missing pagination meta")
	}
	return feed.Page{Items: resp.Data, Cursor: resp.Meta}, nil
}

// WatchResult is what the backend returns for a recorded watch.
type WatchResult struct {
	Message string             `json:"message"`
	Reward  int                `json:"reward"`
	Quiz    *feed.QuizQuestion `json:"quiz"`
}

// RecordWatch durably records that the client's user watched mediaID. The
// idempotency key must be stable across retries of one logical watch; the
// backend deduplicates on it, so a retry after a lost response is safe.
func (c *Client) RecordWatch(ctx context.Context, mediaID, idempotencyKey string) (WatchResult, error) {
	path := fmt.Sprintf("/api/media-watched/%s/%s", url.PathEscape(mediaID), url.PathEscape(c.userID))
	body, err := c.doWithRetry(ctx, http.MethodPost, path, nil, idempotencyKey)
	if err != nil {
		return WatchResult{}, err
	}

	var resp WatchResult
	if err := json.Unmarshal(body, &resp); err != nil {
		return WatchResult{}, fmt.Errorf("api: failed to parse watch result: %w", err)
	}
	return resp, nil
}

// QuizOutcome is the backend's grading of a quiz answer.
type QuizOutcome struct {
	Correct bool `json:"correct"`
	Reward  int  `json:"reward"`
}

// SubmitQuizAnswer submits the user's answer to a quiz question.
func (c *Client) SubmitQuizAnswer(ctx context.Context, quizID, answer string) (QuizOutcome, error) {
	path := fmt.Sprintf("/api/quiz-answered/%s/%s", url.PathEscape(quizID), url.PathEscape(c.userID))
	payload, err := json.Marshal(map[string]string{"answer": answer})
	if err != nil {
		return QuizOutcome{}, fmt.Errorf("api: failed to marshal answer: %w", err)
	}

	body, err := c.doWithRetry(ctx, http.MethodPost, path, payload, "")
	if err != nil {
		return QuizOutcome{}, err
	}

	var resp QuizOutcome
	if err := json.Unmarshal(body, &resp); err != nil {
		return QuizOutcome{}, fmt.Errorf("api: failed to parse quiz outcome: %w", err)
	}
	return resp, nil
}

// doWithRetry executes one request with retry on transient failures.
// Retries up to 3 times on HTTP 429 or 5xx with exponential backoff,
// honoring the Retry-After header on 429. POSTs are safe to retry because
// every mutating endpoint is idempotent per key.
func (c *Client) doWithRetry(ctx context.Context, method, path string, reqBody []byte, idempotencyKey string) ([]byte, error) {
	maxRetries := 3
	backoffs := []time.Duration{500 * time.Millisecond, 1 * time.Second, 2 * time.Second}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("api: rate limiter wait failed: %w", err)
		}

		var rd io.Reader
		if reqBody != nil {
			rd = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return nil, fmt.Errorf("api: failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("api: request cancelled: %w", ctx.Err())
			}
			return nil, fmt.Errorf("api: request failed: %w", err)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("api: failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
			return body, nil
		}

		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !retryable {
			return nil, fmt.Errorf("api: %s %s returned status %d: %s", method, path, resp.StatusCode, string(body))
		}
		lastErr = fmt.Errorf("api: %s %s returned status %d: %s", method, path, resp.StatusCode, string(body))

		if attempt < maxRetries {
			delay := backoffs[attempt]
			if resp.StatusCode == http.StatusTooManyRequests {
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
						delay = time.Duration(seconds) * time.Second
						if delay > 30*time.Second {
							delay = 30 * time.Second
						}
					}
				}
			}
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("api: request cancelled during retry: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return nil, fmt.Errorf("api: all retries exhausted: %w", lastErr)
}
