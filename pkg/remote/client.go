package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/userdesk/pkg/logging"
	"github.com/getmockd/userdesk/pkg/record"
)

// DefaultTimeout is the HTTP timeout applied when none is configured.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// Client is an HTTP client for the users service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string // optional bearer token
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the collection endpoint at baseURL,
// e.g. http://localhost:8080/api/users.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the collection endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every user in the collection.
func (c *Client) List(ctx context.Context) ([]record.UserRecord, error) {
	body, err := c.send(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	return record.NormalizeList(body)
}

// Get returns a single user.
func (c *Client) Get(ctx context.Context, id record.ID) (record.UserRecord, error) {
	body, err := c.send(ctx, http.MethodGet, c.itemURL(id), nil)
	if err != nil {
		return record.UserRecord{}, err
	}
	return record.Normalize(body)
}

// Create creates a user and returns it with its service-assigned id.
func (c *Client) Create(ctx context.Context, input record.UserInput) (record.UserRecord, error) {
	body, err := c.send(ctx, http.MethodPost, c.baseURL, input)
	if err != nil {
		return record.UserRecord{}, err
	}
	return record.Normalize(body)
}

// Update replaces the fields of the user with the given id.
func (c *Client) Update(ctx context.Context, id record.ID, input record.UserInput) (record.UserRecord, error) {
	body, err := c.send(ctx, http.MethodPut, c.itemURL(id), input)
	if err != nil {
		return record.UserRecord{}, err
	}
	return record.Normalize(body)
}

// Delete removes the user with the given id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id record.ID) error {
	_, err := c.send(ctx, http.MethodDelete, c.itemURL(id), nil)
	return err
}

func (c *Client) itemURL(id record.ID) string {
	return c.baseURL + "/" + url.PathEscape(id.String())
}

// send performs one request and returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, method, target string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "url", target, "requestId", requestID, "error", err)
		// *url.Error repeats the method and URL the TransportError already carries.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	c.log.Debug("request completed",
		"method", method,
		"url", target,
		"requestId", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, resp.Status, body)
	}
	return body, nil
}

// apiResponse is the envelope the users service wraps its answers in.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func parseError(status int, statusLine string, body []byte) error {
	text := strings.TrimSpace(strings.TrimPrefix(statusLine, strconv.Itoa(status)))
	if text == "" {
		text = http.StatusText(status)
	}
	rErr := &RemoteError{
		Status:     status,
		StatusText: text,
	}
	var env apiResponse
	if json.Unmarshal(body, &env) == nil {
		rErr.Message = env.Message
	}
	return rErr
}
