package airprint

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

	"github.com/google/uuid"
)

// Service defines the daemon operations airshare uses.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	FetchDevices(ctx context.Context) ([]Device, error)
	FetchSharedIDs(ctx context.Context) ([]string, error)
	Share(ctx context.Context, deviceID string) (string, error)
	Unshare(ctx context.Context, deviceID string) error
	SetLanguage(ctx context.Context, code string) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the AirPrint sharing daemon's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8631"
	defaultUserAgent = "airshare/0.1"
	requestTimeout   = 5 * time.Second
	maxErrorBody     = 4096
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	return NewClientWithTimeout(apiBind, requestTimeout)
}

// NewClientWithTimeout is NewClient with an explicit per-request timeout.
func NewClientWithTimeout(apiBind string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL reports the daemon address requests are sent to.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchDevices retrieves every printer the daemon detected.
func (c *Client) FetchDevices(ctx context.Context) ([]Device, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Device
	if err := c.do(ctx, http.MethodGet, "/api/printers", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchSharedIDs retrieves the ids of printers currently shared.
func (c *Client) FetchSharedIDs(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Device
	if err := c.do(ctx, http.MethodGet, "/api/printers/shared", nil, &payload); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(payload))
	for _, d := range payload {
		if id := strings.TrimSpace(d.ID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Share asks the daemon to publish the printer and returns its confirmation
// message.
func (c *Client) Share(ctx context.Context, deviceID string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	rel, err := devicePath(deviceID, "share")
	if err != nil {
		return "", err
	}
	var payload ShareResponse
	if err := c.doURL(ctx, http.MethodPost, rel, nil, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// Unshare asks the daemon to stop publishing the printer.
func (c *Client) Unshare(ctx context.Context, deviceID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	rel, err := devicePath(deviceID, "unshare")
	if err != nil {
		return err
	}
	return c.doURL(ctx, http.MethodPost, rel, nil, nil)
}

// SetLanguage tells the daemon which locale to use for its own messages.
func (c *Client) SetLanguage(ctx context.Context, code string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodPut, "/api/language", LanguageRequest{Locale: code}, nil)
}

// devicePath keeps the decoded id in Path and the escaped form in RawPath,
// so the id is escaped exactly once on the wire.
func devicePath(deviceID, action string) (*url.URL, error) {
	id := strings.TrimSpace(deviceID)
	if id == "" {
		return nil, fmt.Errorf("device id required")
	}
	return &url.URL{
		Path:    "/api/printers/" + id + "/" + action,
		RawPath: "/api/printers/" + url.PathEscape(id) + "/" + action,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return newAPIError(rel.Path, resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(path string, resp *http.Response) *APIError {
	apiErr := &APIError{Path: path, StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload ErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		apiErr.Message = strings.TrimSpace(payload.Error)
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
