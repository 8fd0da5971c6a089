package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient()

	if client.baseURL != DefaultBaseURL {
		t.Errorf("expected baseURL %q, got %q", DefaultBaseURL, client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}
	if client.AuthToken() != "" {
		t.Errorf("expected no token on a fresh client, got %q", client.AuthToken())
	}

	if client.Auth == nil {
		t.Error("expected Auth service to be initialized")
	}
	if client.Applications == nil {
		t.Error("expected Applications service to be initialized")
	}
	if client.Providers == nil {
		t.Error("expected Providers service to be initialized")
	}
	if client.Users == nil {
		t.Error("expected Users service to be initialized")
	}
}

func TestNewClient_WithOptions(t *testing.T) {
	customClient := &http.Client{Timeout: 60 * time.Second}
	customURL := "https://custom.api.io"

	client := NewClient(
		WithBaseURL(customURL),
		WithHTTPClient(customClient),
	)

	if client.BaseURL() != customURL {
		t.Errorf("expected baseURL %q, got %q", customURL, client.BaseURL())
	}
	if client.httpClient != customClient {
		t.Error("expected custom HTTP client to be set")
	}
}

func TestNewClient_WithTimeout(t *testing.T) {
	client := NewClient(WithTimeout(5 * time.Second))

	if client.httpClient.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", client.httpClient.Timeout)
	}
}

// newTestServer creates a test server and client for testing.
func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL))
}

func TestClient_BearerHeaderPropagation(t *testing.T) {
	var gotAuth string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Provider{})
	})

	ctx := context.Background()

	if _, err := client.Providers.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header before SetAuthToken, got %q", gotAuth)
	}

	client.SetAuthToken("tok-123")
	if _, err := client.Providers.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected 'Bearer tok-123', got %q", gotAuth)
	}

	client.ClearAuthToken()
	if _, err := client.Providers.List(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header after ClearAuthToken, got %q", gotAuth)
	}
}

func TestClient_RequestIDHeader(t *testing.T) {
	seen := map[string]bool{}
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			t.Error("expected X-Request-ID header")
		}
		seen[id] = true
		json.NewEncoder(w).Encode([]Provider{})
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.Providers.List(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct request ids, got %d", len(seen))
	}
}

func TestParseError_SimpleMessage(t *testing.T) {
	err := parseError(http.StatusUnauthorized, []byte(`{"message":"Invalid credentials"}`))

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("expected message 'Invalid credentials', got %q", apiErr.Message)
	}
	if !apiErr.IsUnauthorized() {
		t.Error("expected IsUnauthorized")
	}
}

func TestParseError_WrappedFormat(t *testing.T) {
	body := []byte(`{"error":{"code":"forbidden","message":"Insufficient permissions"}}`)
	err := parseError(http.StatusForbidden, body)

	apiErr, _ := AsAPIError(err)
	if apiErr.Code != "forbidden" {
		t.Errorf("expected code 'forbidden', got %q", apiErr.Code)
	}
	if !apiErr.IsForbidden() {
		t.Error("expected IsForbidden")
	}
}

func TestParseError_UnstructuredBody(t *testing.T) {
	err := parseError(http.StatusBadGateway, []byte("upstream exploded"))

	apiErr, _ := AsAPIError(err)
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("expected raw body as message, got %q", apiErr.Message)
	}
}

func TestErrorMessage_Fallback(t *testing.T) {
	if got := ErrorMessage(context.DeadlineExceeded, "Login failed"); got != "Login failed" {
		t.Errorf("expected fallback, got %q", got)
	}

	apiErr := &Error{StatusCode: 401, Message: "Invalid credentials"}
	if got := ErrorMessage(apiErr, "Login failed"); got != "Invalid credentials" {
		t.Errorf("expected backend message, got %q", got)
	}
}
