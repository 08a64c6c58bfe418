// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/cenkalti/backoff/v5"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint    = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent   = "wikifreq/1.0 (https://github.com/staranto/wikifreq)"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Second
)

// Client issues GET requests against one endpoint and decodes the JSON body.
type Client struct {
	endpoint    string
	userAgent   string
	timeout     time.Duration
	maxAttempts uint
	retryDelay  time.Duration
	http        *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint sets the API URL used by Query.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithUserAgent sets the identifying User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxAttempts sets the number of attempts per logical call, including
// the first.
func WithMaxAttempts(n uint) Option {
	return func(c *Client) { c.maxAttempts = n }
}

// WithRetryDelay sets the fixed delay before each retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithHTTPClient replaces the pooled default client. Its Timeout is left as
// is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a Client with the defaults applied.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:    DefaultEndpoint,
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.maxAttempts == 0 {
		c.maxAttempts = 1
	}
	if c.http == nil {
		c.http = cleanhttp.DefaultPooledClient()
		c.http.Timeout = c.timeout
	}

	return c
}

// Endpoint returns the URL used by Query.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query is Request against the configured endpoint.
func (c *Client) Query(ctx context.Context, params url.Values) (gjson.Result, error) {
	return c.Request(ctx, c.endpoint, params)
}

// Request performs one logical call with retries. The returned document is
// the parsed response body.
func (c *Client) Request(ctx context.Context, endpoint string, params url.Values) (gjson.Result, error) {
	attempt := uint(0)
	// stop holds an error that ends the call without further attempts.
	var stop error

	op := func() (gjson.Result, error) {
		attempt++

		body, err := c.get(ctx, endpoint, params)
		if err != nil {
			var permanent *backoff.PermanentError
			if errors.As(err, &permanent) {
				stop = permanent.Unwrap()
			}
			return gjson.Result{}, err
		}

		if !gjson.ValidBytes(body) {
			return gjson.Result{}, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
		}

		doc := gjson.ParseBytes(body)
		if e := doc.Get("error"); e.Exists() {
			apiErr := &APIError{
				Code: e.Get("code").String(),
				Info: e.Get("info").String(),
			}
			stop = apiErr
			return gjson.Result{}, backoff.Permanent(apiErr)
		}

		return doc, nil
	}

	notify := func(err error, next time.Duration) {
		log.WithError(err).Warnf("request failed, retrying in %s (retries left: %d)", next, c.maxAttempts-attempt)
	}

	doc, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(c.maxAttempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
	if err == nil {
		return doc, nil
	}

	if stop != nil {
		log.Error(stop.Error())
		return gjson.Result{}, stop
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return gjson.Result{}, ctxErr
	}

	log.Errorf("max retries exceeded, aborting API request after %d attempts", attempt)
	return gjson.Result{}, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
}

// get executes a single HTTP round trip and returns the body of a 2xx
// response.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("invalid endpoint %q: %w", endpoint, err))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the pooled connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// Pause waits for d or until ctx is done, whichever comes first.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
