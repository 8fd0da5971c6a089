package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
	contentTypeText     = "text/plain"
	clientUserAgent     = "provctl/1.0.0"
)

// doRequest performs an HTTP request and handles common error cases. The
// request body is JSON unless rawBody is non-nil, in which case it is sent
// as plain text (the approve/reject endpoints take bare comment strings,
// empty comments included).
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, rawBody *string, result interface{}) error {
	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}
	if strings.Contains(path, "?") {
		reqURL = c.baseURL + path
	}

	var bodyReader io.Reader
	contentType := ""
	switch {
	case rawBody != nil:
		bodyReader = strings.NewReader(*rawBody)
		contentType = contentTypeText
	case body != nil:
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
		contentType = contentTypeJSON
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if contentType != "" {
		req.Header.Set(headerContentType, contentType)
	}
	if token := c.AuthToken(); token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("api response")

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, nil, result)
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, body, nil, result)
}

// put performs a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, body, nil, result)
}

// putText performs a PUT request with a raw text body. The body is always
// sent, even when text is empty.
func (c *Client) putText(ctx context.Context, path string, text string, result interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, nil, &text, result)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}
