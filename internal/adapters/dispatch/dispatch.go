// Package dispatch forwards qualifying intake tasks to an external endpoint
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "caseflow/internal/platform/errors"
	"caseflow/internal/platform/logger"

	"github.com/google/uuid"
)

// Payload is the notification body sent for a qualifying task
type Payload struct {
	DispatchID  string `json:"dispatch_id"`
	TaskID      string `json:"task_id"`
	TaskName    string `json:"task_name"`
	LinkIntake  string `json:"link_intake"`
	Status      string `json:"status"`
	ListID      string `json:"list_id"`
	URL         string `json:"url"`
	DateCreated string `json:"date_created"`
	DateUpdated string `json:"date_updated"`
}

// Options configures the dispatch client
type Options struct {
	// URL is the endpoint to POST payloads to, empty disables dispatch
	URL string

	// Timeout bounds each request, default 10s
	Timeout time.Duration
}

// Client posts payloads to the configured endpoint
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// New builds a dispatch client
func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("dispatch"),
	}
}

// Enabled reports whether a target endpoint is configured
func (c *Client) Enabled() bool { return c.opts.URL != "" }

// Send posts one payload, filling DispatchID when the caller left it empty
func (c *Client) Send(ctx context.Context, p Payload) error {
	if !c.Enabled() {
		return perr.Unavailablef("dispatch endpoint not configured")
	}
	if p.DispatchID == "" {
		p.DispatchID = uuid.NewString()
	}

	body, err := json.Marshal(p)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "dispatch marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(body))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "dispatch request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "dispatch post")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		_ = res.Body.Close()
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return perr.Unavailablef("dispatch endpoint returned %d", res.StatusCode)
	}

	c.log.Debug().Str("task_id", p.TaskID).Str("dispatch_id", p.DispatchID).Msg("dispatch sent")
	return nil
}
