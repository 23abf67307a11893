// Package fetcher retrieves pages over HTTP for the scraper.
//
// Transport errors and 5xx responses are retried with exponential backoff.
// Any other non-success status is logged and reported as an empty body, which
// the scraper treats as a page without the expected tables.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/ufc-events/internal/logger"
)

const (
	UserAgent      = "ufc-events/1.0 (github.com/pfrederiksen/ufc-events)"
	Timeout        = 30 * time.Second
	DefaultRetries = 3
)

// statusError is a retryable server-side failure
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// Client fetches pages with retries
type Client struct {
	http            *resty.Client
	retries         uint64
	initialInterval time.Duration
	log             *logger.Logger
}

// Option configures a Client
type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithRetries sets how many times a failed request is retried
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

// WithInitialInterval sets the first backoff delay
func WithInitialInterval(d time.Duration) Option {
	return func(c *Client) { c.initialInterval = d }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new Client
func New(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(Timeout).
			SetHeader("User-Agent", UserAgent),
		retries:         DefaultRetries,
		initialInterval: 500 * time.Millisecond,
		log:             logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetLogger(restyLogger{log: c.log})
	return c
}

// restyLogger routes resty's own diagnostics into the structured logger
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error("resty", logger.Fields{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))}, nil)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn("resty", logger.Fields{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug("resty", logger.Fields{"detail": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

// Fetch returns the body at uri, or an empty body for non-success statuses
func (c *Client) Fetch(ctx context.Context, uri string) ([]byte, error) {
	var body []byte

	attempt := func() error {
		c.log.Info("Sending request", logger.Fields{"uri": uri})

		res, err := c.http.R().SetContext(ctx).Get(uri)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return backoff.Permanent(ctxErr)
			}
			return fmt.Errorf("fetching %s: %w", uri, err)
		}

		c.log.Info("Received response", logger.Fields{"uri": uri, "status": res.StatusCode()})
		switch {
		case res.IsSuccess():
			body = res.Body()
			return nil
		case res.StatusCode() >= http.StatusInternalServerError:
			return &statusError{code: res.StatusCode()}
		default:
			c.log.Error("Request was not successful", logger.Fields{"uri": uri}, &statusError{code: res.StatusCode()})
			body = nil
			return nil
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx)

	notify := func(err error, wait time.Duration) {
		c.log.Warn("Retrying request", logger.Fields{"uri": uri, "wait": wait.String(), "reason": err.Error()})
	}

	if err := backoff.RetryNotify(attempt, policy, notify); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			c.log.Error("Request was not successful", logger.Fields{"uri": uri}, err)
			return nil, nil
		}
		return nil, err
	}
	return body, nil
}
