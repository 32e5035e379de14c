// Package hub talks to a Copernicus-style data hub: an OpenSearch endpoint
// for the product catalog, an OData endpoint for product bytes and a sibling
// endpoint for each product's checksum. All requests use basic auth and a
// shared transport retry budget.
package hub

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	pkgerrors "github.com/gggplot/s5get/pkg/errors"
)

// Transport retry defaults. These cover transient hub flakiness; the digest
// retry loop in pkg/transfer is a separate budget with a different purpose.
const (
	DefaultTries      = 5
	DefaultRetryDelay = 30 * time.Second
)

// Options configure the hub client.
type Options struct {
	// Tries is the total number of attempts for each request.
	Tries int

	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration

	// Timeout bounds a whole request including the body read. Zero means no
	// client-side deadline, which streamed multi-gigabyte downloads need;
	// cancellation happens through the context instead.
	Timeout time.Duration

	// UserAgent sent with every request.
	UserAgent string
}

// Client is an authenticated HTTP client for one hub.
type Client struct {
	http     *http.Client
	base     string
	username string
	password string
	opts     Options
	log      logrus.FieldLogger
}

// New creates a hub client for baseURL with basic-auth credentials.
func New(baseURL, username, password string, opts Options, log logrus.FieldLogger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrConfigValidation, "invalid hub URL %q", baseURL)
	}
	if opts.Tries <= 0 {
		opts.Tries = DefaultTries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "s5get/1.0"
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		base:     strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		opts:     opts,
		log:      log,
	}, nil
}

// get issues an authenticated GET, retrying any non-200 response or network
// error with a fixed delay until the budget runs out. Exhaustion wraps
// errors.ErrTransport: a hard failure for the whole task.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	c.log.Debugf("requesting %s", rawURL)

	var lastStatus int
	var lastErr error
	for attempt := 1; attempt <= c.opts.Tries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to create request")
		}
		req.SetBasicAuth(c.username, c.password)
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.http.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			return resp, nil
		}
		if err != nil {
			lastErr = err
			lastStatus = 0
			c.log.Warnf("request failed (%v), waiting %s before trying again", err, c.opts.RetryDelay)
		} else {
			lastErr = nil
			lastStatus = resp.StatusCode
			_ = resp.Body.Close()
			c.log.Warnf("request failed with status %d, waiting %s before trying again", lastStatus, c.opts.RetryDelay)
		}

		if attempt == c.opts.Tries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.opts.RetryDelay):
		}
	}

	if lastErr != nil {
		return nil, pkgerrors.Wrapf(pkgerrors.ErrTransport, "request for %s failed after %d attempts: %v", rawURL, c.opts.Tries, lastErr)
	}
	return nil, pkgerrors.Wrapf(pkgerrors.ErrTransport, "request for %s failed after %d attempts, last status %d", rawURL, c.opts.Tries, lastStatus)
}

// Open starts a streaming read of the resource at rawURL. The caller owns
// the returned body. Implements transfer.BlobSource.
func (c *Client) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// getText fetches a small text resource whole.
func (c *Client) getText(ctx context.Context, rawURL string) (string, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to read response body")
	}
	return string(data), nil
}
