// Package api is the ProvHub platform REST client. One Client instance is
// shared by the whole process; the bearer token it carries is the single
// source of truth for request authentication.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the default ProvHub API endpoint.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the ProvHub API client.
//
// Use NewClient to create one:
//
//	client := api.NewClient(api.WithBaseURL("https://api.provhub.io"))
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu    sync.RWMutex
	token string

	// Services
	Auth         *AuthService
	Applications *ApplicationsService
	Providers    *ProvidersService
	Users        *UsersService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new ProvHub API client. The client starts without a
// bearer token; SetAuthToken installs one after login or session hydration.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Applications = &ApplicationsService{client: c}
	c.Providers = &ProvidersService{client: c}
	c.Users = &UsersService{client: c}

	return c
}

// SetAuthToken installs the bearer token attached to every subsequent
// request. Last writer wins; there is exactly one active session per
// client instance.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearAuthToken removes the bearer token. Subsequent requests go out
// unauthenticated.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// AuthToken returns the currently installed bearer token, empty when none.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
