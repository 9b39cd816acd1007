// Package openroute implements the Geocoder and Router ports on top of
// the OpenRouteService HTTP API.
package openroute

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"bookrider/internal/core/domain/model/navigation"
)

// DefaultTimeout bounds every call to the routing service.
const DefaultTimeout = 10 * time.Second

// Client is the shared HTTP client for the OpenRouteService endpoints.
// Both the geocoder and the router adapters wrap it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given OpenRouteService deployment.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// get performs an authenticated GET against the given endpoint and
// returns the status code and body. Transport failures, timeouts
// included, are wrapped as ExternalAPIFailureError with the given
// client-safe message; the raw error never leaves the adapter.
func (c Client) get(ctx context.Context, path string, query url.Values, failureMessage string) (int, []byte, error) {
	query.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, navigation.NewExternalAPIFailureError(failureMessage, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, navigation.NewExternalAPIFailureError(failureMessage, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, navigation.NewExternalAPIFailureError(failureMessage, err)
	}
	return resp.StatusCode, body, nil
}
