package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/medreport/internal/client/models"
	"github.com/dmitrijs2005/medreport/internal/common"
	"github.com/dmitrijs2005/medreport/internal/logging"
	"github.com/dmitrijs2005/medreport/internal/netx"
	"github.com/google/uuid"
)

const (
	DefaultLoginPath = "/auth/login"
	SignUpPath       = "/auth/signup"
	UploadPath       = "/reports/upload"

	// UploadField is the multipart field the backend reads the report from.
	UploadField = "file"

	// RootRoute is where the UI is sent after the session is dropped.
	RootRoute = "/"
)

// RequestInterceptor runs on every outgoing request before dispatch.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor runs on every response before status handling.
// Returning an error aborts the call with that error.
type ResponseInterceptor func(resp *http.Response) error

// HTTPClient talks JSON (and multipart for uploads) to the backend.
type HTTPClient struct {
	baseURL   string
	loginPath string
	http      *http.Client
	session   Session
	redirect  Redirector
	logger    logging.Logger

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

type Option func(*HTTPClient)

// WithTimeout sets a per-request timeout; zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLoginPath selects the sign-in endpoint ("/auth/login" or "/auth/signin").
func WithLoginPath(p string) Option {
	return func(c *HTTPClient) {
		if p != "" {
			c.loginPath = p
		}
	}
}

func WithRedirector(r Redirector) Option {
	return func(c *HTTPClient) { c.redirect = r }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient validates baseURL and wires the default interceptors.
func NewHTTPClient(baseURL string, session Session, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}

	c := &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		loginPath: DefaultLoginPath,
		http:      &http.Client{},
		session:   session,
		redirect:  RedirectFunc(func(context.Context, string) {}),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.requestInterceptors = []RequestInterceptor{c.requestIDInterceptor, c.bearerInterceptor}
	c.responseInterceptors = []ResponseInterceptor{c.unauthorizedInterceptor}
	return c, nil
}

func (c *HTTPClient) requestIDInterceptor(req *http.Request) error {
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	return nil
}

// bearerInterceptor attaches the session token when one exists. It only
// touches headers.
func (c *HTTPClient) bearerInterceptor(req *http.Request) error {
	if token := c.session.Token(req.Context()); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return nil
}

// unauthorizedInterceptor drops the session and redirects to the root
// route on a 401 to a request that carried a bearer token. A 401 to an
// anonymous request, such as a rejected login, is an ordinary ServerError.
// It runs once per response.
func (c *HTTPClient) unauthorizedInterceptor(resp *http.Response) error {
	if resp.StatusCode != http.StatusUnauthorized {
		return nil
	}
	if !strings.HasPrefix(resp.Request.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix) {
		return nil
	}
	ctx := resp.Request.Context()

	if err := c.session.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear session after 401", "error", err)
	}
	c.redirect.Redirect(ctx, RootRoute)

	return &SessionExpiredError{Message: readAPIMessage(resp.Body)}
}

func (c *HTTPClient) SignIn(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.postJSON(ctx, c.loginPath, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.postJSON(ctx, SignUpPath, reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadReport streams file as multipart form data under UploadField.
func (c *HTTPClient) UploadReport(ctx context.Context, file models.PendingFile) (*models.UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, &RequestSetupError{Err: fmt.Errorf("open %s: %w", file.Name, err)}
	}

	body, contentType := netx.MultipartFile(UploadField, file.Name, file.MIMEType, src)
	defer body.Close()

	var out models.UploadResult
	if err := c.do(ctx, http.MethodPost, UploadPath, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return &RequestSetupError{Err: fmt.Errorf("encode body: %w", err)}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return &RequestSetupError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	for _, ic := range c.requestInterceptors {
		if err := ic(req); err != nil {
			return &RequestSetupError{Err: err}
		}
	}

	log := c.logger.With("request_id", req.Header.Get(common.RequestIDHeaderName), "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(start))

	for _, ic := range c.responseInterceptors {
		if err := ic(resp); err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readAPIMessage(resp.Body)
		if msg == "" {
			msg = msgServerGeneric
		}
		return &ServerError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{Status: resp.StatusCode, Message: msgServerGeneric, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readAPIMessage extracts the "message" field of an error body, or "".
func readAPIMessage(r io.Reader) string {
	var apiErr models.APIError
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&apiErr); err != nil {
		return ""
	}
	return strings.TrimSpace(apiErr.Message)
}
