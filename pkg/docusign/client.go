// Package docusign is a client for the DocuSign eSignature REST API (v2).
//
// The client covers authentication (legacy X-DocuSign-Authentication header, OAuth2 tokens and the
// JWT grant), account management, envelope creation from documents or templates, recipient
// management, embedded signing views and document retrieval.
//
// Calls are synchronous: each operation performs one HTTP request and checks DocuSign answered with
// the expected status code. Unexpected responses are returned as *Error values carrying the status
// code and DocuSign error payload; the client never retries.
//
// Typical usage:
//
//	cfg, err := docusign.ConfigFromEnviron()
//	client, err := docusign.NewClient(cfg, docusign.WithLogger(logger))
//	envelope := &docusign.Envelope{
//		EmailSubject: "Please sign",
//		Documents:    []docusign.Document{{DocumentID: "1", Name: "contract.pdf", Content: file}},
//		Recipients:   []docusign.Signer{{Email: "signer@example.com", Name: "Signer", RecipientID: "1"}},
//	}
//	summary, err := client.CreateEnvelopeFromDocuments(ctx, envelope)
package docusign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client is a DocuSign REST API client. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter

	// account details can be discovered with LoginInformation
	mu         sync.RWMutex
	accountID  string
	accountURL string
}

type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests. The client timeout is left untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used to report requests (debug) and failures (error).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a client for the given configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.RootURL = strings.TrimRight(cfg.RootURL, "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		accountID:  cfg.AccountID,
		accountURL: cfg.accountURL(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.RateLimitRPS > 0 {
		burst := int(cfg.RateLimitBurst)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	return c, nil
}

// RootURL returns the root URL of the DocuSign API.
func (c *Client) RootURL() string {
	return c.cfg.RootURL
}

// AccountID returns the configured or discovered account id.
func (c *Client) AccountID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountID
}

// AccountURL returns the URL of the account, i.e. {root}/accounts/{accountId}.
func (c *Client) AccountURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountURL
}

// IntegratorKey returns the configured integrator key (client id of the integration).
func (c *Client) IntegratorKey() string {
	return c.cfg.IntegratorKey
}

// SetOAuth2Token switches the client to OAuth2 authentication.
func (c *Client) SetOAuth2Token(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.OAuth2Token = token
}

func (c *Client) setAccount(accountID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountID = accountID
	c.accountURL = buildAccountURL(c.cfg.RootURL, accountID)
}

// BaseHeaders returns the headers sent with every request.
//
// When an OAuth2 token is configured the request is authenticated with a bearer token and soboEmail is
// passed in X-DocuSign-Act-As-User. Otherwise the legacy X-DocuSign-Authentication header carries the
// username, password, integrator key and SendOnBehalfOf email.
func (c *Client) BaseHeaders(soboEmail string) http.Header {
	c.mu.RLock()
	token := c.cfg.OAuth2Token
	c.mu.RUnlock()

	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")

	if token != "" {
		h.Set("Authorization", "Bearer "+token)
		if soboEmail != "" {
			h.Set("X-DocuSign-Act-As-User", soboEmail)
		}
		return h
	}

	auth := struct {
		Username       string `json:"Username"`
		Password       string `json:"Password"`
		IntegratorKey  string `json:"IntegratorKey"`
		SendOnBehalfOf string `json:"SendOnBehalfOf,omitempty"`
	}{
		Username:       c.cfg.Username,
		Password:       c.cfg.Password,
		IntegratorKey:  c.cfg.IntegratorKey,
		SendOnBehalfOf: soboEmail,
	}
	// a struct of strings always marshals
	authJSON, _ := json.Marshal(auth)
	h.Set("X-DocuSign-Authentication", string(authJSON))
	return h
}

// request describes one call to the API
type request struct {
	method string

	// path is appended to the root URL unless it is already an absolute URL
	path string

	body        io.Reader
	contentType string
	headers     http.Header
	soboEmail   string
	expected    int
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.cfg.RootURL + path
}

// send performs the request and returns the response when the status code is the expected one.
// The caller must close the response body.
func (c *Client) send(ctx context.Context, req request) (*http.Response, error) {
	target := c.resolve(req.path)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, WrapTransportError(err, req.method, target)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return nil, WrapInternalError(err, "failed to create request")
	}

	for k, v := range c.BaseHeaders(req.soboEmail) {
		httpReq.Header[k] = v
	}
	for k, v := range req.headers {
		httpReq.Header[k] = v
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		dsErr := WrapTransportError(err, req.method, target)
		c.logger.Error(dsErr.Error())
		return nil, dsErr
	}

	c.logger.Debug("DocuSign request",
		slog.String("method", req.method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != req.expected {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		dsErr := newUnexpectedStatusError(req.method, target, resp.StatusCode, req.expected, body)
		c.logger.Error(dsErr.Error(),
			slog.String("error_code", dsErr.APIErrorCode),
		)
		return nil, dsErr
	}

	return resp, nil
}

// maxErrorBodySize limits how much of an error response is kept
const maxErrorBodySize = 64 * 1024

// doJSON sends in as a JSON body (when not nil) and decodes the response into out.
//
// JSON responses are decoded into out, other responses are returned as text when out is a *string.
func (c *Client) doJSON(ctx context.Context, method, path string, in any, expected int, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return WrapInternalError(err, "failed to encode request body")
		}
		body = bytes.NewReader(payload)
	}

	resp, err := c.send(ctx, request{
		method:   method,
		path:     path,
		body:     body,
		expected: expected,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if text, ok := out.(*string); ok {
			raw, err := io.ReadAll(resp.Body)
			if err != nil {
				return WrapDecodeError(err, "failed to read response body")
			}
			*text = string(raw)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return WrapDecodeError(err, "failed to decode DocuSign response")
		}
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return WrapDecodeError(err, "failed to read response body")
	}
	text, ok := out.(*string)
	if !ok {
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		return WrapDecodeError(fmt.Errorf("content type %q", resp.Header.Get("Content-Type")), "DocuSign response is not JSON")
	}
	*text = string(raw)
	return nil
}

// ensureAccount discovers the account with LoginInformation when no account is configured.
func (c *Client) ensureAccount(ctx context.Context) error {
	if c.AccountURL() != "" {
		return nil
	}
	_, err := c.LoginInformation(ctx)
	return err
}

// accountPath returns the URL of a resource within the account, e.g accountPath("envelopes", id)
func (c *Client) accountPath(ctx context.Context, segments ...string) (string, error) {
	if err := c.ensureAccount(ctx); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(c.AccountURL())
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String(), nil
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(name + " is required")
	}
	return nil
}
