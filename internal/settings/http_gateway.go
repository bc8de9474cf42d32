package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/hiddenspringfield/shop-backend/pkg/types"
)

// SettingsPath is the gateway route relative to the base URL.
const SettingsPath = "/api/settings"

// HTTPGateway reaches a remote settings endpoint that speaks the JSON envelope
// used by this service.
type HTTPGateway struct {
	baseURL    string
	client     *http.Client
	token      string
	maxRetries uint64
	backoff    time.Duration
}

// HTTPGatewayOption configures an HTTPGateway.
type HTTPGatewayOption func(*HTTPGateway)

// WithHTTPClient overrides the default client.
func WithHTTPClient(client *http.Client) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithBearerToken authenticates writes with an admin token.
func WithBearerToken(token string) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		g.token = token
	}
}

// WithRetries retries transport failures and 5xx responses.
func WithRetries(max uint64, base time.Duration) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		g.maxRetries = max
		if base > 0 {
			g.backoff = base
		}
	}
}

// NewHTTPGateway targets baseURL, e.g. "https://shop.example.com".
func NewHTTPGateway(baseURL string, opts ...HTTPGatewayOption) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		backoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *HTTPGateway) FetchSettings(ctx context.Context) (Patch, error) {
	return g.do(ctx, http.MethodGet, nil)
}

func (g *HTTPGateway) SaveSettings(ctx context.Context, record ThemeSettings) (Patch, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return Patch{}, fmt.Errorf("encode settings: %w", err)
	}
	return g.do(ctx, http.MethodPut, body)
}

func (g *HTTPGateway) do(ctx context.Context, method string, body []byte) (Patch, error) {
	var out Patch
	backoff := retry.WithMaxRetries(g.maxRetries, retry.NewExponential(g.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		patch, retryable, err := g.once(ctx, method, body)
		if err != nil {
			if retryable {
				return retry.RetryableError(err)
			}
			return err
		}
		out = patch
		return nil
	})
	return out, err
}

func (g *HTTPGateway) once(ctx context.Context, method string, body []byte) (Patch, bool, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+SettingsPath, reader)
	if err != nil {
		return Patch{}, false, fmt.Errorf("build settings request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Patch{}, true, fmt.Errorf("settings %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var envelope types.ErrorEnvelope
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&envelope)
		err := fmt.Errorf("settings %s: status %d %s", method, resp.StatusCode, envelope.Error.Code)
		return Patch{}, resp.StatusCode >= 500, err
	}

	var envelope struct {
		Data Patch `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Patch{}, false, fmt.Errorf("decode settings response: %w", err)
	}
	if err := envelope.Data.Validate(); err != nil {
		return Patch{}, false, err
	}
	return envelope.Data, false, nil
}
