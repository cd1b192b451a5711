package repository

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

	"stacksphere/internal/domain/entity"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// BackendClient talks JSON to the external StackSphere REST backend. The
// caller's ID token, when present in the context session, is forwarded as a
// bearer token.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient builds a client for baseURL. A zero timeout leaves
// requests unbounded, which matches how the frontend calls the backend.
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *BackendClient) BaseURL() string {
	return c.baseURL
}

type backendErrorBody struct {
	Message         string `json:"message"`
	Error           string `json:"error"`
	UpgradeRequired bool   `json:"upgradeRequired"`
}

func (c *BackendClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *BackendClient) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *BackendClient) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *BackendClient) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *BackendClient) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *BackendClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("Failed to encode backend request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Internal("Failed to build backend request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := entity.SessionFrom(ctx); ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Backend %s %s failed: %v", method, path, err)
		return errors.BadGateway("Backend is unavailable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.BadGateway("Failed to read backend response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Backend %s %s returned %d", method, path, resp.StatusCode)
		return decodeBackendError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.BadGateway("Unexpected backend response", err)
	}
	return nil
}

func decodeBackendError(status int, raw []byte) error {
	var body backendErrorBody
	_ = json.Unmarshal(raw, &body)

	message := body.Message
	if message == "" {
		message = body.Error
	}
	if message == "" {
		message = fmt.Sprintf("Backend request failed with status %d", status)
	}

	switch {
	case body.UpgradeRequired:
		return errors.PaymentRequired(message)
	case status == http.StatusNotFound:
		return errors.New("NOT_FOUND", message, status, nil)
	case status == http.StatusUnauthorized:
		return errors.Unauthorized(message, nil)
	case status == http.StatusForbidden:
		return errors.Forbidden(message, nil)
	case status == http.StatusConflict:
		return errors.Conflict(message)
	case status >= 500:
		return errors.BadGateway(message, nil)
	default:
		return errors.New("BACKEND_REJECTED", message, status, nil)
	}
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
