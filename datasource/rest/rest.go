// Package rest implements model.DataSource over an HTTP endpoint.
//
// The source POSTs the JSON-encoded GetRowsRequest to the configured URL and
// expects a JSON GetRowsResult back. Sorting and filtering happen on the
// server; the source forwards the snapshot it is given and trusts the
// response.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/gridkit/gridkit/model"
)

// Source is an HTTP-backed data source.
type Source struct {
	client  *resty.Client
	url     string
	limiter *rate.Limiter
}

// Option mutates a Source during construction.
type Option func(*Source)

// WithHTTPClient replaces the underlying HTTP client, e.g. to set timeouts
// or a proxy.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Source) { s.client = resty.NewWithClient(hc) }
}

// WithHeader attaches a header to every request, e.g. an auth token.
func WithHeader(key, value string) Option {
	return func(s *Source) { s.client.SetHeader(key, value) }
}

// WithRateLimit throttles outgoing fetches to rps requests per second with
// the given burst. Zero rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Source) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// New creates a Source fetching rows from the given endpoint URL.
func New(endpointURL string, opts ...Option) *Source {
	s := &Source{
		client: resty.New(),
		url:    endpointURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ model.DataSource = (*Source)(nil)

// GetRows fetches one page of rows.
func (s *Source) GetRows(ctx context.Context, req model.GetRowsRequest) (model.GetRowsResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return model.GetRowsResult{}, err
		}
	}

	var result model.GetRowsResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&req).
		SetResult(&result).
		Post(s.url)
	if err != nil {
		return model.GetRowsResult{}, fmt.Errorf("rest: fetch rows: %w", err)
	}
	if resp.IsError() {
		return model.GetRowsResult{}, fmt.Errorf("rest: %s returned %s", s.url, resp.Status())
	}
	return result, nil
}
