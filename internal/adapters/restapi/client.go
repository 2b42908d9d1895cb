// Package restapi is the typed client for the remote accreditation API.
// It owns wire formats and error-body parsing; the services above it see
// domain types and structured errors only.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// TokenReader supplies the current bearer token, if any. Implemented by
// the token store; the second result reports presence.
type TokenReader interface {
	Token(ctx context.Context) (string, bool, error)
}

// Options groups dependencies for NewClient.
type Options struct {
	// BaseURL is the API root, e.g. "https://api.example.com".
	BaseURL string
	// Tokens supplies the bearer token for authenticated endpoints.
	Tokens TokenReader
	// HTTPClient is optional; http.DefaultClient is used when nil.
	// No client-side timeout is configured here: request lifetime is the
	// caller's context.
	HTTPClient *http.Client
}

// Client calls the remote accreditation API.
type Client struct {
	baseURL string
	tokens  TokenReader
	http    *http.Client
}

// NewClient constructs a Client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tokens:  opts.Tokens,
		http:    httpClient,
	}
}

// tokenSource adapts the token store to oauth2.TokenSource. The store is
// consulted on every request so a scope change (durable vs session) is
// picked up immediately.
type tokenSource struct {
	ctx    context.Context
	tokens TokenReader
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	tok, ok, err := ts.tokens.Token(ts.ctx)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// do issues an HTTP request against the API. A nil in body means no
// request body; a nil out means the response body is discarded. Non-2xx
// responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		tok, tokErr := (tokenSource{ctx: ctx, tokens: c.tokens}).Token()
		if tokErr != nil {
			return tokErr
		}
		if tok != nil {
			tok.SetAuthHeader(req)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// FetchResource GETs path relative to the API base and returns the raw
// JSON body. Used for the per-role dashboard/profile/resource endpoints,
// which the console treats as opaque providers.
func (c *Client) FetchResource(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
