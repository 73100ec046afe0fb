package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cyberguard-lab/internal/config"
	"cyberguard-lab/pkg/logger"
)

// SafeBrowsingClient answers whether a URL is known-malicious. The
// transport and credentials behind it are configuration; callers only see
// the boolean verdict.
type SafeBrowsingClient interface {
	IsMalicious(ctx context.Context, url string) (bool, error)
}

// GoogleSafeBrowsingClient implements SafeBrowsingClient using the Google
// Safe Browsing v4 threatMatches API
type GoogleSafeBrowsingClient struct {
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewGoogleSafeBrowsingClient creates a new Google Safe Browsing client
func NewGoogleSafeBrowsingClient(cfg config.SafeBrowsingConfig, log *logger.Logger) *GoogleSafeBrowsingClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &GoogleSafeBrowsingClient{
		apiKey: cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.WithComponent("safe-browsing"),
	}
}

// IsMalicious checks a single URL against Google Safe Browsing. A missing
// API key is reported as an error so the caller can apply its fail-open
// policy deterministically.
func (c *GoogleSafeBrowsingClient) IsMalicious(ctx context.Context, url string) (bool, error) {
	if c.apiKey == "" {
		return false, fmt.Errorf("Safe Browsing API key not configured")
	}

	reqBody := safeBrowsingRequest{
		Client: safeBrowsingClientInfo{
			ClientID:      "cyberguard",
			ClientVersion: "1.0.0",
		},
		ThreatInfo: threatInfo{
			ThreatTypes:      []string{"MALWARE", "SOCIAL_ENGINEERING"},
			PlatformTypes:    []string{"ANY_PLATFORM"},
			ThreatEntryTypes: []string{"URL"},
			ThreatEntries:    []threatEntry{{URL: url}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("https://safebrowsing.googleapis.com/v4/threatMatches:find?key=%s", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var apiResp safeBrowsingResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().
		Str("url", url).
		Int("matches", len(apiResp.Matches)).
		Msg("Safe Browsing check completed")

	return len(apiResp.Matches) > 0, nil
}

// API request/response types
type safeBrowsingRequest struct {
	Client     safeBrowsingClientInfo `json:"client"`
	ThreatInfo threatInfo             `json:"threatInfo"`
}

type safeBrowsingClientInfo struct {
	ClientID      string `json:"clientId"`
	ClientVersion string `json:"clientVersion"`
}

type threatInfo struct {
	ThreatTypes      []string      `json:"threatTypes"`
	PlatformTypes    []string      `json:"platformTypes"`
	ThreatEntryTypes []string      `json:"threatEntryTypes"`
	ThreatEntries    []threatEntry `json:"threatEntries"`
}

type threatEntry struct {
	URL string `json:"url"`
}

type safeBrowsingResponse struct {
	Matches []threatMatch `json:"matches"`
}

type threatMatch struct {
	ThreatType   string      `json:"threatType"`
	PlatformType string      `json:"platformType"`
	Threat       threatEntry `json:"threat"`
}

// MockSafeBrowsingClient is a mock implementation for testing
type MockSafeBrowsingClient struct {
	// ThreatURLs maps URLs to their malicious verdict
	ThreatURLs map[string]bool
	// Err, when set, is returned for every lookup
	Err error
	// Calls records the URLs checked, in order
	Calls []string
}

// NewMockSafeBrowsingClient creates a mock Safe Browsing client
func NewMockSafeBrowsingClient() *MockSafeBrowsingClient {
	return &MockSafeBrowsingClient{
		ThreatURLs: map[string]bool{
			"http://malware.testing.google.test/testing/malware/":   true,
			"http://phishing.testing.google.test/testing/phishing/": true,
		},
	}
}

// IsMalicious implements SafeBrowsingClient for testing
func (c *MockSafeBrowsingClient) IsMalicious(ctx context.Context, url string) (bool, error) {
	c.Calls = append(c.Calls, url)
	if c.Err != nil {
		return false, c.Err
	}
	return c.ThreatURLs[url], nil
}
