package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/questline-studio/agency-site/pkg/models"
)

// DefaultUserAgent identifies the proxy to the Steam Store without posing as a browser
const DefaultUserAgent = "agency-site/1.0 (+metadata-proxy)"

// Client defines the interface for interacting with the Steam Store API
type Client interface {
	AppDetails(ctx context.Context, appID string) (models.AppDetailsEnvelope, error)
}

// StatusError is returned when the Store API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("steam API returned status %d", e.StatusCode)
}

type clientImpl struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a new Steam Store client
func NewClient(baseURL, userAgent string, httpClient *http.Client) Client {
	if baseURL == "" {
		baseURL = "https://store.steampowered.com"
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

func (c *clientImpl) AppDetails(ctx context.Context, appID string) (models.AppDetailsEnvelope, error) {
	detailsURL := fmt.Sprintf("%s/api/appdetails?appids=%s", c.baseURL, url.QueryEscape(appID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, detailsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	// Any caching layer in front of the store may answer from a copy up to an hour old.
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching app details: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope models.AppDetailsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	return envelope, nil
}
