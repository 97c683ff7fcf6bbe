package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// Config points the client at a running API.
type Config struct {
	BaseURL string
	// Token is sent as "Authorization: Bearer <token>" when set.
	Token   string
	Timeout time.Duration
}

// Client is a typed wrapper over the cleaner HTTP API.
type Client struct {
	HTTP *resty.Client
}

// apiError matches the {"error": "..."} body of failed calls.
type apiError struct {
	Message string `json:"error"`
}

// StatusError is a non-2xx answer.
type StatusError struct {
	Op      string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 answers.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == 404
}

// New builds a client for cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := resty.New()
	r.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	r.SetHeader("Accept", "application/json")
	r.SetTimeout(timeout)
	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}
	return &Client{HTTP: r}
}

// request starts a call bound to ctx that decodes failures into apiError.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.HTTP.R().SetContext(ctx).SetError(&apiError{})
}

// check turns transport errors and non-2xx answers into errors.
func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		se := &StatusError{Op: op, Code: resp.StatusCode()}
		if ae, ok := resp.Error().(*apiError); ok && ae != nil {
			se.Message = ae.Message
		}
		if se.Message == "" {
			se.Message = strings.TrimSpace(resp.String())
		}
		return se
	}
	return nil
}
