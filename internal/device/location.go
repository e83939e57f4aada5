package device

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sentry/internal/httpclient"
	"sentry/internal/logging"
)

// DefaultGeoURL is the IP-geolocation endpoint used to resolve the
// current city, the server-side analog of the app's reverse geocode call.
const DefaultGeoURL = "http://ip-api.com/json"

// IPLocation resolves the current city from the caller's public IP.
type IPLocation struct {
	BaseURL string
	Client  *http.Client
}

// NewIPLocation builds an IPLocation with a bounded-timeout client.
func NewIPLocation(baseURL string, logger logging.Logger) *IPLocation {
	if baseURL == "" {
		baseURL = DefaultGeoURL
	}
	return &IPLocation{
		BaseURL: baseURL,
		Client:  httpclient.New(10*time.Second, logger),
	}
}

func (l *IPLocation) CurrentCity(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("geolocation request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geolocation returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var parsed struct {
		City                 string `json:"city"`
		Locality             string `json:"locality"`
		PrincipalSubdivision string `json:"principalSubdivision"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode geolocation response: %w", err)
	}

	switch {
	case parsed.City != "":
		return parsed.City, nil
	case parsed.Locality != "":
		return parsed.Locality, nil
	default:
		return parsed.PrincipalSubdivision, nil
	}
}
