package status

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	pkgLog "smartgov-assistant/pkg/log"
)

// Client talks to the NC Ex-Gratia status API. Auth tokens are cached and
// refreshed ahead of expiry; every call is throttled by a shared limiter.
type Client struct {
	l          pkgLog.Logger
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a status API client.
func NewClient(l pkgLog.Logger, cfg Config) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		l:          l,
		cfg:        cfg,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// CheckStatus looks up one application by reference number.
func (c *Client) CheckStatus(ctx context.Context, referenceNo string) (*Application, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPI, err)
	}

	url := fmt.Sprintf("%s/api/exgratia/status/%s", c.cfg.BaseURL, referenceNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPI, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %d: %s", ErrAPI, resp.StatusCode, string(raw))
	}

	var app Application
	if err := json.NewDecoder(resp.Body).Decode(&app); err != nil {
		return nil, fmt.Errorf("%w: failed to decode status: %v", ErrAPI, err)
	}
	if app.ReferenceNo == "" {
		app.ReferenceNo = referenceNo
	}
	return &app, nil
}

// token returns a valid access token, authenticating when missing or
// close to expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Add(refreshMargin).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	payload, _ := json.Marshal(map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/api/auth/login", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %d: %s", ErrAuthFailed, resp.StatusCode, string(raw))
	}

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}

	c.accessToken = login.AccessToken
	c.tokenExpiry = time.Now().Add(tokenLifetime)
	c.l.Infof(ctx, "exgratia API: authenticated, token valid until %s", c.tokenExpiry.Format(time.RFC3339))
	return c.accessToken, nil
}
