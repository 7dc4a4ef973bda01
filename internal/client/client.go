// Package client is a typed HTTP client for the auth and event services.
// When a token is set it is sent in the x-auth-token header on every call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eventhub/platform/internal/pkg/token"
)

const defaultTimeout = 15 * time.Second

// APIError is a decoded error envelope.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

type envelope struct {
	IsError bool `json:"isError"`
	Error   struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to both services. It is not safe to change the token while
// requests are in flight.
type Client struct {
	authURL  string
	eventURL string
	http     *http.Client
	token    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the initial token.
func WithToken(t string) Option {
	return func(c *Client) { c.token = t }
}

func New(authURL, eventURL string, opts ...Option) *Client {
	c := &Client{
		authURL:  strings.TrimRight(authURL, "/"),
		eventURL: strings.TrimRight(eventURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(t string) { c.token = t }

func (c *Client) Token() string { return c.token }

// --- Auth service ---

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, c.authURL+"/authentication/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, c.authURL+"/authentication/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, c.authURL+"/authentication/update", upd, nil)
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, c.authURL+"/authentication/user/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Event service ---

func (c *Client) eventPath(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return c.eventURL + "/api/events/" + strings.Join(escaped, "/")
}

func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, c.eventURL+"/api/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, c.eventPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

func (c *Client) ListComments(ctx context.Context, id string) ([]Comment, error) {
	var out struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.do(ctx, http.MethodGet, c.eventPath(id, "comments"), nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) CreateEvent(ctx context.Context, in NewEvent) (*Event, error) {
	var out struct {
		Event Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodPost, c.eventPath("create"), in, &out); err != nil {
		return nil, err
	}
	return &out.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.eventPath(id), nil, nil)
}

func (c *Client) AddComment(ctx context.Context, id, content string) (*Comment, error) {
	var out struct {
		Comment Comment `json:"comment"`
	}
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, c.eventPath(id, "comment"), body, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

func (c *Client) Join(ctx context.Context, id string) (*Participant, error) {
	var out struct {
		Participant Participant `json:"participant"`
	}
	if err := c.do(ctx, http.MethodPost, c.eventPath(id, "participant"), nil, &out); err != nil {
		return nil, err
	}
	return &out.Participant, nil
}

func (c *Client) Leave(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.eventPath(id, "participant"), nil, nil)
}

// --- Transport ---

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(token.Header, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || !env.IsError {
		return &APIError{Status: status, Code: status, Message: http.StatusText(status)}
	}
	return &APIError{Status: status, Code: env.Error.Code, Message: env.Error.Message}
}
