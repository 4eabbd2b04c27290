package connection

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/tidwall/gjson"

	"github.com/yndnr/ultron-cli/internal/core/domain"
	"github.com/yndnr/ultron-cli/internal/infra/buildinfo"
	"github.com/yndnr/ultron-cli/internal/infra/tlsroots"
	"github.com/yndnr/ultron-cli/internal/telemetry/logger"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 64 << 20

// HTTPClient talks to the Ultron API with basic auth. It implements
// service.API.
type HTTPClient struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets a per-request timeout. Zero means none.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// NewHTTPClient creates a client for the session's endpoint and
// credentials. TLS verification follows the session's cert file.
func NewHTTPClient(sess *domain.Session, opts ...ClientOption) (*HTTPClient, error) {
	if err := sess.Validate(); err != nil {
		return nil, err
	}

	tlsConfig, err := tlsroots.ClientConfig(sess.CertFile)
	if err != nil {
		return nil, fmt.Errorf("load certfile: %w", err)
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	c := &HTTPClient{
		baseURL:  sess.BaseURL(),
		username: sess.Username,
		password: sess.Password,
		client:   &http.Client{Transport: transport},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request with query parameters.
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a form-encoded POST request.
func (c *HTTPClient) Post(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, form)
}

// Delete performs a DELETE request with a form-encoded body.
func (c *HTTPClient) Delete(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, form)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query, form url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	requestID := ulid.Make().String()
	ctx = logger.WithRequestID(ctx, requestID)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.addHeaders(req, requestID)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	log := logger.L(ctx)
	if log.Enabled(slog.LevelDebug) {
		log.Debug("api request", "method", method, "path", path, "query", query.Encode(), "form", logger.RedactForm(form).Encode())
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug("api request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	log.Debug("api response", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	return ParseResponse(resp.StatusCode, data)
}

// addHeaders adds authentication and common headers.
func (c *HTTPClient) addHeaders(req *http.Request, requestID string) {
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("X-Request-ID", requestID)
}

// ParseResponse unwraps the {"result": ..., "message": ...} envelope. A
// 2xx status yields the raw result JSON. Anything else is a remote error
// carrying the server's message verbatim.
func ParseResponse(status int, body []byte) ([]byte, error) {
	if status < 200 || status > 299 {
		return nil, domain.RemoteError(status, errorMessage(body))
	}
	if !gjson.ValidBytes(body) {
		if len(strings.TrimSpace(string(body))) == 0 {
			return nil, nil
		}
		return nil, domain.ErrRemote.WithMessage("invalid JSON response").WithStatus(status)
	}
	result := gjson.GetBytes(body, "result")
	if !result.Exists() {
		return nil, nil
	}
	return []byte(result.Raw), nil
}

func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "message"); msg.Exists() {
			return msg.String()
		}
	}
	return strings.TrimSpace(string(body))
}
