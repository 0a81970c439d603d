package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/fplassist/go-fpl-client/creds"
	"github.com/fplassist/go-fpl-client/session"
)

const refreshPath = "/auth/refresh"

const defaultTimeout = 30 * time.Second

// Client issues JSON requests against the optimization service. It attaches
// the current access credential, classifies failures, and drives the refresh
// protocol: at most one refresh-and-retry cycle per originating request,
// with concurrent refreshes collapsed into a single flight.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *session.Manager
	logger     zerolog.Logger

	// Concurrent 401s must trigger at most one in-flight refresh call.
	// Independent retries would race the server-side refresh rotation: a
	// stale refresh token reused after rotation invalidates the session.
	refreshGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (timeouts live there).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithLogger sets the request logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a transport over the given base URL (including any /api/v1
// style prefix) and session manager.
func New(baseURL string, sessions *session.Manager, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[transport.New] base URL is required")
	}
	if sessions == nil {
		return nil, errors.New("[transport.New] session manager is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		sessions:   sessions,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Get issues a GET request. query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body. body may be nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// PostQuery issues a POST request carrying query parameters and no body.
func (c *Client) PostQuery(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, query, nil, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request. query may be nil.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[transport.do] marshal %s %s body", method, path)
		}
	}

	pair, authed := c.sessions.Current()
	access := ""
	if authed {
		access = pair.Access
	}

	status, respBody, err := c.roundTrip(ctx, method, path, query, payload, access)
	if err != nil {
		return err
	}

	// One refresh-and-retry cycle, only for requests that carried a
	// credential. A 401 on an unauthenticated request has nothing to
	// refresh.
	if status == http.StatusUnauthorized && authed {
		freshAccess, err := c.refresh(ctx, access)
		if err != nil {
			return err
		}

		status, respBody, err = c.roundTrip(ctx, method, path, query, payload, freshAccess)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// A second rejection after a successful refresh is a hard
			// failure, never another refresh loop.
			c.sessions.Clear()
			return errors.Wrapf(ErrUnauthorized, "%s %s rejected after refresh", method, path)
		}
	}

	return c.decode(method, path, status, respBody, out)
}

// roundTrip performs a single HTTP exchange and returns the status code and
// drained body. Network-level failures surface as ErrUnreachable.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, payload []byte, access string) (int, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "[transport.roundTrip] build %s %s", method, path)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("request failed")
		return 0, nil, errors.Wrapf(ErrUnreachable, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrapf(ErrUnreachable, "%s %s: read response: %v", method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request")

	return resp.StatusCode, respBody, nil
}

// refresh obtains a fresh access credential, collapsing concurrent callers
// into one flight. staleAccess is the credential the failing request carried;
// callers arriving after another flight already rotated the pair reuse the
// rotated credential without a second remote call.
func (c *Client) refresh(ctx context.Context, staleAccess string) (string, error) {
	fresh, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		current, held := c.sessions.Current()
		if held && current.Access != staleAccess {
			return current.Access, nil
		}
		if !held || current.Refresh == "" {
			c.sessions.Clear()
			return nil, errors.Wrap(ErrUnauthorized, "no refresh credential held")
		}

		reqBody, err := json.Marshal(map[string]string{"refresh_token": current.Refresh})
		if err != nil {
			return nil, errors.Wrap(err, "[transport.refresh] marshal")
		}

		status, respBody, err := c.roundTrip(ctx, http.MethodPost, refreshPath, nil, reqBody, "")
		if err != nil {
			// No response from the refresh endpoint: the pair may still be
			// good, so the session survives and the failure propagates as
			// unreachable.
			return nil, err
		}
		if status != http.StatusOK {
			c.logger.Warn().Int("status", status).Msg("refresh rejected, clearing session")
			c.sessions.Clear()
			return nil, errors.Wrapf(ErrUnauthorized, "refresh rejected with status %d", status)
		}

		var rotated struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.Unmarshal(respBody, &rotated); err != nil {
			c.sessions.Clear()
			return nil, errors.Wrap(ErrUnauthorized, "refresh returned an unreadable pair")
		}

		pair := creds.Pair{Access: rotated.AccessToken, Refresh: rotated.RefreshToken}
		if !pair.Valid() {
			c.sessions.Clear()
			return nil, errors.Wrap(ErrUnauthorized, "refresh returned a partial pair")
		}
		if err := c.sessions.Adopt(pair); err != nil {
			return nil, errors.Wrap(err, "[transport.refresh] adopt rotated pair")
		}

		c.logger.Debug().Msg("credential pair rotated")
		return pair.Access, nil
	})
	if err != nil {
		return "", err
	}
	return fresh.(string), nil
}

// decode maps a completed exchange onto the error taxonomy and unmarshals
// successful payloads into out.
func (c *Client) decode(method, path string, status int, body []byte, out any) error {
	switch {
	case status >= 200 && status < 300:
		if out == nil || len(body) == 0 {
			return nil
		}
		return errors.Wrapf(json.Unmarshal(body, out), "[transport.decode] %s %s", method, path)

	case status == http.StatusUnauthorized:
		return errors.Wrapf(ErrUnauthorized, "%s %s: %s", method, path, detailOf(body))

	default:
		return &RejectedError{Status: status, Detail: detailOf(body)}
	}
}

// detailOf extracts the service's {"detail": ...} message. Validation errors
// can carry structured detail; those pass through as raw JSON.
func detailOf(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		return detail
	}
	return string(envelope.Detail)
}
