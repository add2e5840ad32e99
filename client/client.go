// Copyright 2025 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client provides a client for the Alertmanager API v2.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	commoncfg "github.com/prometheus/common/config"
	"github.com/prometheus/common/promslog"
	"github.com/prometheus/common/version"
)

const (
	apiPrefix = "/api/v2"

	epAlerts      = apiPrefix + "/alerts"
	epAlertGroups = apiPrefix + "/alerts/groups"
	epSilences    = apiPrefix + "/silences"
	epSilence     = apiPrefix + "/silence/:id"

	// DefaultTimeout bounds each API request when Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// Response bodies beyond this length are truncated in error messages.
	maxErrDetailLen = 512
)

var userAgentHeader = fmt.Sprintf("alertmanager-mcp-server/%s", version.Version)

// Config configures an Alertmanager API client.
type Config struct {
	// URL is the base URL of the Alertmanager, e.g. http://localhost:9093.
	// A path prefix is honored when the Alertmanager is proxied under one.
	URL string
	// Timeout bounds each request including reading the response body.
	// Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPConfig optionally supplies TLS and authentication settings for
	// the underlying transport.
	HTTPConfig *commoncfg.HTTPClientConfig
	// Logger receives a diagnostic line for every failed request. A nil
	// Logger disables logging.
	Logger *slog.Logger
}

// Client talks to a single Alertmanager over its v2 REST API. It is safe
// for concurrent use.
type Client struct {
	client  api.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New returns a Client for the Alertmanager at cfg.URL.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("no Alertmanager URL given")
	}

	rt := api.DefaultRoundTripper
	if cfg.HTTPConfig != nil {
		var err error
		rt, err = commoncfg.NewRoundTripperFromConfig(*cfg.HTTPConfig, "alertmanager-mcp")
		if err != nil {
			return nil, fmt.Errorf("creating HTTP transport: %w", err)
		}
	}

	c, err := api.NewClient(api.Config{Address: cfg.URL, RoundTripper: rt})
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = promslog.NewNopLogger()
	}

	return &Client{
		client:  c,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// APIError is returned when the Alertmanager answers with a non-2xx status
// code. Msg carries the response body, truncated.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	s := fmt.Sprintf("unexpected status code %d (%s)", e.Code, http.StatusText(e.Code))
	if e.Msg != "" {
		s = fmt.Sprintf("%s: %s", s, e.Msg)
	}
	return s
}

// ListAlerts returns the alerts matching the given filter.
func (c *Client) ListAlerts(ctx context.Context, filter AlertFilter) ([]*Alert, error) {
	body, err := c.do(ctx, http.MethodGet, epAlerts, nil, filter.Values(), nil)
	if err != nil {
		return nil, err
	}
	var alerts []*Alert
	if err := c.decode("alerts", body, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// ListAlertGroups returns the alert groups matching the given filter. The
// grouped payload is returned as raw JSON: grouping is Alertmanager's
// business and the structure is handed on untouched.
func (c *Client) ListAlertGroups(ctx context.Context, filter AlertFilter) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, epAlertGroups, nil, filter.Values(), nil)
	if err != nil {
		return nil, err
	}
	var groups json.RawMessage
	if err := c.decode("alert groups", body, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListSilences returns all silences, restricted by the given matcher
// filter expression if it is non-empty.
func (c *Client) ListSilences(ctx context.Context, filter string) ([]*Silence, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	body, err := c.do(ctx, http.MethodGet, epSilences, nil, q, nil)
	if err != nil {
		return nil, err
	}
	var silences []*Silence
	if err := c.decode("silences", body, &silences); err != nil {
		return nil, err
	}
	return silences, nil
}

// CreateSilence submits a new silence and returns the ID the Alertmanager
// assigned to it.
func (c *Client) CreateSilence(ctx context.Context, sil *PostableSilence) (string, error) {
	body, err := c.do(ctx, http.MethodPost, epSilences, nil, nil, sil)
	if err != nil {
		return "", err
	}
	var resp struct {
		SilenceID string `json:"silenceID"`
	}
	if err := c.decode("silence creation", body, &resp); err != nil {
		return "", err
	}
	return resp.SilenceID, nil
}

// DeleteSilence expires the silence with the given ID.
func (c *Client) DeleteSilence(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, epSilence, map[string]string{"id": id}, nil, nil)
	return err
}

// do performs a single request against the API and returns the response
// body. Non-2xx responses become an *APIError. There is exactly one attempt
// per call: callers talk to an interactive session that would rather see
// the failure than wait out a retry loop.
func (c *Client) do(ctx context.Context, method, ep string, args map[string]string, query url.Values, reqBody any) ([]byte, error) {
	var buf io.Reader
	if reqBody != nil {
		var b bytes.Buffer
		if err := json.NewEncoder(&b).Encode(reqBody); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		buf = &b
	}

	u := c.client.URL(ep, args)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	ctx, cancel := context.WithTimeoutCause(ctx, c.timeout, fmt.Errorf("request timed out after %s", c.timeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgentHeader)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, body, err := c.client.Do(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", err, context.Cause(ctx))
		}
		c.logger.Error("Alertmanager request failed", "method", method, "path", u.Path, "err", err)
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		err := &APIError{
			Code: resp.StatusCode,
			Msg:  truncate(strings.TrimSpace(string(body)), maxErrDetailLen),
		}
		c.logger.Error("Alertmanager request failed", "method", method, "path", u.Path, "status", resp.StatusCode, "err", err)
		return nil, err
	}
	return body, nil
}

// decode unmarshals an API response body, logging shape mismatches so they
// surface with the same context as transport failures.
func (c *Client) decode(what string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		err = fmt.Errorf("invalid %s response: %w", what, err)
		c.logger.Error("Alertmanager response undecodable", "what", what, "err", err)
		return err
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
