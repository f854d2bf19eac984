// Package api implements the JSON-over-HTTP client for the drive backend.
// Every response is wrapped in a {status, message, data} envelope; payload
// fields named metadata/name are encrypted and decrypted by upper layers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/common"
	"github.com/dkrasnovs/skyvault/internal/logging"
	"github.com/dkrasnovs/skyvault/internal/timex"
	"github.com/google/uuid"
)

// Client talks to the drive API. All methods are safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	auth    *authTransport
	log     logging.Logger
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, log logging.Logger) *Client {
	auth := &authTransport{base: http.DefaultTransport, refreshURL: baseURL + "/v3/auth/refresh"}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Transport: auth, Timeout: 30 * time.Second},
		auth:    auth,
		log:     log,
	}
}

// SetTokens installs the API token pair after login.
func (c *Client) SetTokens(apiKey, refreshToken string) {
	c.auth.setTokens(apiKey, refreshToken)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return common.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: http %d", common.ErrAPIFailure, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !env.Status {
		return fmt.Errorf("%w: %s", common.ErrAPIFailure, env.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

// AuthInfo is the pre-login account info needed to derive the auth key.
type AuthInfo struct {
	Salt string `json:"salt"`
}

// GetAuthInfo fetches the key-derivation salt for an account.
func (c *Client) GetAuthInfo(ctx context.Context, email string) (*AuthInfo, error) {
	var info AuthInfo
	err := c.do(ctx, http.MethodPost, "/v3/auth/info", nil, map[string]string{"email": email}, &info)
	if err != nil {
		return nil, fmt.Errorf("auth info: %w", err)
	}
	return &info, nil
}

// Session is the login result. MasterKeys is an encrypted envelope the
// caller decrypts with the derived master key.
type Session struct {
	APIKey       string `json:"apiKey"`
	RefreshToken string `json:"refreshToken"`
	MasterKeys   string `json:"masterKeys"`
}

// Login authenticates with the derived auth key and installs the returned
// token pair on the client.
func (c *Client) Login(ctx context.Context, email, authKey string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/v3/login", nil,
		map[string]string{"email": email, "authKey": authKey}, &s)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.SetTokens(s.APIKey, s.RefreshToken)
	return &s, nil
}

// EventsPage is one page of the audit log. An empty Events slice signals
// the end of pagination.
type EventsPage struct {
	Events []models.Event `json:"events"`
	Limit  int            `json:"limit"`
}

// FetchEvents returns the page of events following lastID, oldest first
// within the page. Event timestamps are normalized to unix milliseconds
// here, at the ingestion boundary.
func (c *Client) FetchEvents(ctx context.Context, lastID int64, filter string) (*EventsPage, error) {
	q := url.Values{}
	q.Set("lastId", fmt.Sprintf("%d", lastID))
	q.Set("filter", filter)

	var page EventsPage
	if err := c.do(ctx, http.MethodGet, "/v3/user/events", q, nil, &page); err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}

	for i := range page.Events {
		page.Events[i].Timestamp = timex.UnixMs(page.Events[i].Timestamp)
	}

	return &page, nil
}

// FetchEventInfo returns the detail record of a single event.
func (c *Client) FetchEventInfo(ctx context.Context, eventUUID string) (*models.Event, error) {
	var ev models.Event
	err := c.do(ctx, http.MethodPost, "/v3/user/events/get", nil,
		map[string]string{"uuid": eventUUID}, &ev)
	if err != nil {
		return nil, fmt.Errorf("fetching event info: %w", err)
	}
	ev.Timestamp = timex.UnixMs(ev.Timestamp)
	return &ev, nil
}

// DriveItem is one undecrypted entry of a directory listing. Files carry
// Metadata, folders carry Name; both are encrypted envelopes.
type DriveItem struct {
	UUID      string `json:"uuid"`
	Parent    string `json:"parent"`
	Type      string `json:"type"`
	Metadata  string `json:"metadata,omitempty"`
	Name      string `json:"name,omitempty"`
	Size      int64  `json:"size"`
	Timestamp int64  `json:"timestamp"`
	Favorited bool   `json:"favorited"`
	Color     string `json:"color,omitempty"`
}

// ListDirectory returns the undecrypted content of a folder.
func (c *Client) ListDirectory(ctx context.Context, parent string) ([]DriveItem, error) {
	var out struct {
		Items []DriveItem `json:"items"`
	}
	err := c.do(ctx, http.MethodPost, "/v3/dir/content", nil,
		map[string]string{"uuid": parent}, &out)
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}
	return out.Items, nil
}

// FolderSize fetches the aggregated subtree size of a folder. Sizes are
// computed server side and cached by the caller.
func (c *Client) FolderSize(ctx context.Context, folderUUID string) (int64, error) {
	var out struct {
		Size int64 `json:"size"`
	}
	err := c.do(ctx, http.MethodPost, "/v3/dir/size", nil,
		map[string]string{"uuid": folderUUID}, &out)
	if err != nil {
		return 0, fmt.Errorf("fetching folder size: %w", err)
	}
	return out.Size, nil
}
