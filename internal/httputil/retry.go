// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil fetches remote datasets over HTTP.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the first back-off interval after an HTTP 429. Each
// further attempt doubles it. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxBackoff caps both the computed delay and a server's Retry-After.
const maxBackoff = 2 * time.Minute

const defaultMaxRetries = 3

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Get issues a GET for url and returns the response body on a 2xx status.
// HTTP 429 responses are retried up to maxRetries times (0 uses the default)
// waiting Retry-After when the server sends it, otherwise an exponential
// back-off starting at RetryBaseDelay. Any other non-2xx status returns a
// *StatusError. The caller closes the returned body.
func Get(ctx context.Context, client *http.Client, url, userAgent string, maxRetries int) (io.ReadCloser, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp.Body, nil
		case resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries:
			drain(resp)
			return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		drain(resp)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, maxBackoff)
	}
	return min(RetryBaseDelay<<attempt, maxBackoff)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
