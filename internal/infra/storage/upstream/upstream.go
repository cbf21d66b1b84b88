// Package upstream holds the shared client for the persistence service and
// the error type its repositories surface. The persistence service is the
// sole owner of durable state; everything in internal/infra/storage is a thin,
// honest translation layer over its REST interface.
package upstream

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Error reports a persistence-service call that did not succeed, either at
// the transport level or with a non-2xx status. It is banner-level: the
// triggering workflow is abandoned where it failed and nothing is retried or
// reverted automatically.
type Error struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence service: %s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("persistence service: %s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps a failed call. Exactly one of err or status carries the
// cause.
func NewError(method, path string, status int, err error) *Error {
	return &Error{Method: method, Path: path, Status: status, Err: err}
}

// Config carries the connection settings for the persistence service.
type Config struct {
	BaseURL string
	// Token is the opaque bearer credential issued by the identity provider.
	// When empty, requests go out unauthenticated and the service is expected
	// to reject them; that rejection surfaces as a normal *Error.
	Token   string
	Timeout time.Duration
}

// NewClient builds the shared resty client. Outgoing requests are traced via
// the otelhttp transport so upstream latency shows up on the workflow spans.
func NewClient(cfg Config) *resty.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	client := resty.NewWithClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return client
}

// Check translates a completed resty response into an *Error when the call
// failed. A nil return means the caller may trust the decoded result.
func Check(resp *resty.Response, err error, method, path string) error {
	if err != nil {
		return NewError(method, path, 0, err)
	}
	if resp.IsError() {
		return NewError(method, path, resp.StatusCode(), nil)
	}
	return nil
}
