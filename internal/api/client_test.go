// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// server replays bodies in order; a body of "" answers 500. The last entry
// repeats once the list is exhausted.
func server(t *testing.T, bodies ...string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(bodies) {
			n = len(bodies) - 1
		}
		if bodies[n] == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bodies[n]))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testClient(endpoint string) *Client {
	return New(
		WithEndpoint(endpoint),
		WithRetryDelay(time.Millisecond),
		WithTimeout(5*time.Second),
	)
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Equal(t, uint(DefaultMaxAttempts), c.maxAttempts)
	assert.Equal(t, DefaultRetryDelay, c.retryDelay)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)

	c = New(WithMaxAttempts(0))
	assert.Equal(t, uint(1), c.maxAttempts)
}

func TestQuery_Success(t *testing.T) {
	var gotUA string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"query":{"pages":{"1":{"title":"Cat"}}}}`))
	}))
	defer srv.Close()

	c := New(WithEndpoint(srv.URL), WithUserAgent("TestBot/1.0"))
	doc, err := c.Query(context.Background(), url.Values{"action": {"query"}, "titles": {"Cat|Dog"}})
	require.NoError(t, err)

	assert.Equal(t, "Cat", doc.Get("query.pages.1.title").String())
	assert.Equal(t, "TestBot/1.0", gotUA)
	assert.Equal(t, "query", gotQuery.Get("action"))
	assert.Equal(t, "Cat|Dog", gotQuery.Get("titles"))
}

func TestRequest_Retries(t *testing.T) {
	tests := []struct {
		name      string
		bodies    []string
		wantCalls int32
		wantErr   error
		wantTitle string
	}{
		{
			name:      "recovers after server errors",
			bodies:    []string{"", "", `{"ok":{"title":"third"}}`},
			wantCalls: 3,
			wantTitle: "third",
		},
		{
			name:      "recovers after malformed body",
			bodies:    []string{"<html>oops</html>", `{"ok":{"title":"second"}}`},
			wantCalls: 2,
			wantTitle: "second",
		},
		{
			name:      "gives up after max attempts",
			bodies:    []string{""},
			wantCalls: 3,
			wantErr:   ErrMaxRetriesExceeded,
		},
		{
			name:      "malformed every time",
			bodies:    []string{"not json"},
			wantCalls: 3,
			wantErr:   ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := server(t, tt.bodies...)
			doc, err := testClient(srv.URL).Query(context.Background(), url.Values{})

			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Get("ok.title").String())
		})
	}
}

func TestRequest_StatusErrorIsWrapped(t *testing.T) {
	srv, _ := server(t, "")
	_, err := testClient(srv.URL).Query(context.Background(), url.Values{})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestRequest_APIErrorIsNotRetried(t *testing.T) {
	srv, calls := server(t, `{"error":{"code":"badtitle","info":"Bad title"}}`)
	_, err := testClient(srv.URL).Query(context.Background(), url.Values{})

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.NotErrorIs(t, err, ErrMaxRetriesExceeded)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "badtitle", apiErr.Code)
	assert.Equal(t, "Bad title", apiErr.Info)
	assert.Equal(t, "api error: badtitle: Bad title", apiErr.Error())
}

func TestRequest_APIErrorOnLastAttempt(t *testing.T) {
	srv, calls := server(t, "", "", `{"error":{"info":"late"}}`)
	_, err := testClient(srv.URL).Query(context.Background(), url.Values{})

	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
	assert.True(t, IsAPIError(err))
	assert.Equal(t, "api error: late", err.Error())
}

func TestRequest_ContextCancelled(t *testing.T) {
	srv, calls := server(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(WithEndpoint(srv.URL), WithRetryDelay(time.Hour))
	_, err := c.Query(ctx, url.Values{})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, atomic.LoadInt32(calls), int32(1))
}

func TestRequest_InvalidEndpoint(t *testing.T) {
	c := testClient("http://[::1")
	_, err := c.Query(context.Background(), url.Values{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid endpoint")
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api error: Unknown error", (&APIError{}).Error())
	assert.Equal(t, "api error: x: Unknown error", (&APIError{Code: "x"}).Error())
}

func TestPause(t *testing.T) {
	require.NoError(t, Pause(context.Background(), 0))
	require.NoError(t, Pause(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, Pause(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
