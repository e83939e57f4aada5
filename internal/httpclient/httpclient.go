// Package httpclient builds the outbound HTTP clients used for every
// network suspension point (LLM, weather, geolocation). Each client carries
// an explicit timeout so an unresponsive upstream can never hang a session.
package httpclient

import (
	"net/http"
	"time"

	"sentry/internal/logging"
)

type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logging.Logger
}

// New returns an *http.Client with the given timeout whose requests are
// traced through the component logger.
func New(timeout time.Duration, logger logging.Logger) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &loggingRoundTripper{
			base:   http.DefaultTransport,
			logger: logging.OrNop(logger),
		},
	}
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		t.logger.Warn("%s %s failed after %s: %v", req.Method, req.URL.Host, elapsed.Round(time.Millisecond), err)
		return nil, err
	}
	t.logger.Debug("%s %s -> %d (%s)", req.Method, req.URL.Host, resp.StatusCode, elapsed.Round(time.Millisecond))
	return resp, nil
}
