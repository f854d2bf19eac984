package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// authTransport injects the bearer token into outgoing requests and
// refreshes an expired token pair before the request goes out. The API key
// is a JWT, so expiry is read from its claims without verifying the
// signature; the server remains the authority and still returns 401 for
// anything actually invalid.
type authTransport struct {
	base       http.RoundTripper
	refreshURL string

	mu           sync.Mutex
	apiKey       string
	refreshToken string
}

func (t *authTransport) setTokens(apiKey, refreshToken string) {
	t.mu.Lock()
	t.apiKey = apiKey
	t.refreshToken = refreshToken
	t.mu.Unlock()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key, err := t.currentKey()
	if err != nil {
		return nil, err
	}
	if key != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+key)
	}
	return t.base.RoundTrip(req)
}

// currentKey returns a usable API key, refreshing first when the cached one
// has expired.
func (t *authTransport) currentKey() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.apiKey == "" || !tokenExpired(t.apiKey) {
		return t.apiKey, nil
	}
	if t.refreshToken == "" {
		return t.apiKey, nil
	}

	if err := t.refreshLocked(); err != nil {
		return "", fmt.Errorf("refreshing token: %w", err)
	}
	return t.apiKey, nil
}

// refreshLocked exchanges the refresh token for a new pair. Caller holds
// the mutex.
func (t *authTransport) refreshLocked() error {
	body, err := json.Marshal(map[string]string{"refreshToken": t.refreshToken})
	if err != nil {
		return err
	}

	resp, err := http.Post(t.refreshURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh endpoint returned http %d", resp.StatusCode)
	}

	var out struct {
		Status bool `json:"status"`
		Data   struct {
			APIKey       string `json:"apiKey"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Status {
		return fmt.Errorf("refresh rejected")
	}

	t.apiKey = out.Data.APIKey
	t.refreshToken = out.Data.RefreshToken
	return nil
}

// tokenExpired reports whether key is a JWT whose exp claim has passed.
// Opaque (non-JWT) keys never expire client side.
func tokenExpired(key string) bool {
	token, _, err := jwt.NewParser().ParseUnverified(key, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
