// Package client is the HTTP transport for the SEBAK ledger API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/manifest-network/sebakscan/internal/config"
	"github.com/manifest-network/sebakscan/internal/fault"
	"github.com/manifest-network/sebakscan/internal/metrics"
	"github.com/pkg/errors"
)

// RESTClient issues GET requests against the ledger API and decodes the
// responses into envelopes. It never retries.
type RESTClient struct {
	http    *resty.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRESTClient returns a client for the API at cfg.URL. m and logger may be nil.
func NewRESTClient(cfg config.ClientConfig, m *metrics.Metrics, logger *slog.Logger) *RESTClient {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("component", "client")

	httpClient := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{logger}).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		httpClient.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &RESTClient{
		http:    httpClient,
		metrics: m,
		logger:  logger,
	}
}

// Get fetches path with the given query parameters.
func (c *RESTClient) Get(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}
	return c.do(req, path)
}

// GetLink fetches a hypermedia link. Relative hrefs are resolved against the
// base URL; absolute hrefs are used as they are.
func (c *RESTClient) GetLink(ctx context.Context, href string) (*Envelope, error) {
	if href == "" {
		return nil, errors.WithMessage(fault.ErrNoSuchPage, "empty link")
	}
	return c.do(c.http.R().SetContext(ctx), href)
}

func (c *RESTClient) do(req *resty.Request, path string) (*Envelope, error) {
	endpoint := endpointLabel(path)
	start := time.Now()

	env, err := c.execute(req, path)

	c.metrics.ObserveRequest(endpoint, fault.Kind(err), time.Since(start))
	if err != nil {
		c.logger.Debug("API request failed", "path", path, "error", err, "kind", fault.Kind(err))
		return nil, err
	}
	c.logger.Debug("API request", "path", path, "elapsed", time.Since(start))
	return env, nil
}

func (c *RESTClient) execute(req *resty.Request, path string) (*Envelope, error) {
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", fault.ErrNetwork, path, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errors.WithMessagef(fault.ErrNotFound, "GET %s: %s", path, problemTitle(resp.Body(), resp.Status()))
	case resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices:
		return nil, errors.WithMessagef(fault.ErrServer, "GET %s: %s", path, problemTitle(resp.Body(), resp.Status()))
	}

	env, err := DecodeEnvelope(resp.Body())
	if err != nil {
		return nil, errors.WithMessagef(err, "GET %s", path)
	}
	return env, nil
}

// problemTitle extracts the title of an RFC 7807 problem body, falling back
// to the HTTP status line.
func problemTitle(body []byte, status string) string {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &problem); err != nil || problem.Title == "" {
		return status
	}
	if problem.Detail != "" {
		return problem.Title + ": " + problem.Detail
	}
	return problem.Title
}

// restyLogger routes resty's internal messages to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
