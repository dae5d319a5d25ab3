// internal/adapters/booking/client.go
package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booking_listings/internal/adapters/observability"
	"booking_listings/internal/domain"
)

// Session is the browser session the upstream expects: a header block, the
// cookie and the search-page URL parameters. These values expire and are
// refreshed by the operator.
type Session struct {
	Headers     map[string]string
	Cookie      string
	QueryParams map[string]string
}

type Client struct {
	endpoint string
	hc       *http.Client
	session  Session
}

func New(endpoint string, s Session, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("graphql endpoint is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("graphql endpoint: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: timeout},
		session:  s,
	}, nil
}

var (
	ErrNotFound     = fmt.Errorf("booking: not found: %w", domain.ErrTransport)
	ErrUnauthorized = fmt.Errorf("booking: unauthorized: %w", domain.ErrTransport)
	ErrForbidden    = fmt.Errorf("booking: forbidden: %w", domain.ErrTransport)
)

// Search posts p once and decodes the JSON body. Numbers are kept as json.Number.
// Every failure wraps domain.ErrTransport; nothing is retried.
func (c *Client) Search(ctx context.Context, p domain.RequestPayload) (map[string]any, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	u, err := c.requestURL(p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range c.session.Headers {
		req.Header.Set(k, v)
	}
	if c.session.Cookie != "" {
		req.Header.Set("Cookie", c.session.Cookie)
	}
	req.Header.Set("Content-Type", "application/json")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("booking", OperationName, 0, time.Since(start))
		// network error or context canceled
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTransport, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("booking", OperationName, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out map[string]any
		dec := json.NewDecoder(resp.Body)
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			if errors.Is(err, io.EOF) {
				// empty body: nothing to project
				return map[string]any{}, nil
			}
			return nil, fmt.Errorf("%w: decode response: %w", domain.ErrTransport, err)
		}
		return out, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound

	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized

	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: bad status %d: %s", domain.ErrTransport, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// requestURL adds the session's URL parameters plus the ones the search page
// derives from the payload (ss, checkin, checkout).
func (c *Client) requestURL(p domain.RequestPayload) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("graphql endpoint: %w", err)
	}
	q := u.Query()
	for k, v := range c.session.QueryParams {
		q.Set(k, v)
	}
	in := p.Variables.Input
	if in.Location.SearchString != "" {
		q.Set("ss", in.Location.SearchString)
	}
	if in.Dates.Checkin != "" {
		q.Set("checkin", in.Dates.Checkin)
	}
	if in.Dates.Checkout != "" {
		q.Set("checkout", in.Dates.Checkout)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
