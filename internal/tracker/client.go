// Package tracker resolves issue keys to summaries through the Yandex Tracker API.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bjulian5/releasebot/internal/ui"
)

// ErrUnauthorized is returned when the tracker rejects the credentials
var ErrUnauthorized = errors.New("tracker rejected credentials")

const (
	DefaultAPIURL = "https://api.tracker.yandex.net"
	DefaultIAMURL = "https://iam.api.cloud.yandex.net/iam/v1/tokens"
	DefaultWebURL = "https://tracker.yandex.ru"
)

// Options configures a Client
type Options struct {
	OrgID      string
	OAuthToken string // exchanged for an IAM token
	APIURL     string
	IAMURL     string
	Timeout    time.Duration
	RequestID  string // sent as X-Request-ID on every call
}

// Client is a minimal HTTP client for the tracker issues API
type Client struct {
	orgID      string
	iamToken   string
	apiURL     string
	requestID  string
	httpClient *http.Client
}

// NewClient exchanges the OAuth token for an IAM token and returns a ready client
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIURL == "" {
		opts.APIURL = DefaultAPIURL
	}
	if opts.IAMURL == "" {
		opts.IAMURL = DefaultIAMURL
	}

	c := &Client{
		orgID:      opts.OrgID,
		apiURL:     strings.TrimSuffix(opts.APIURL, "/"),
		requestID:  opts.RequestID,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}

	token, err := c.exchangeToken(ctx, opts.IAMURL, opts.OAuthToken)
	if err != nil {
		return nil, err
	}
	c.iamToken = token
	return c, nil
}

func (c *Client) exchangeToken(ctx context.Context, iamURL, oauthToken string) (string, error) {
	body, err := json.Marshal(map[string]string{"yandexPassportOauthToken": oauthToken})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, iamURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get IAM token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		ui.Errorf("Tracker IAM token exchange failed: %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("failed to get IAM token: %w", ErrUnauthorized)
		}
		return "", fmt.Errorf("failed to get IAM token: status %s", resp.Status)
	}

	var parsed struct {
		IAMToken string `json:"iamToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode IAM token response: %w", err)
	}
	if parsed.IAMToken == "" {
		return "", errors.New("IAM token response has no iamToken")
	}
	return parsed.IAMToken, nil
}

// GetIssueSummary returns the summary of an issue.
// found is false when the tracker does not know the key; err is set only for
// transport, auth and server failures.
func (c *Client) GetIssueSummary(ctx context.Context, key string) (summary string, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/v2/issues/"+url.PathEscape(key), nil)
	if err != nil {
		return "", false, fmt.Errorf("build issue request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.iamToken)
	req.Header.Set("X-Org-ID", c.orgID)
	req.Header.Set("Content-Type", "application/json")
	if c.requestID != "" {
		req.Header.Set("X-Request-ID", c.requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("failed to get issue %s: %w", key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", false, fmt.Errorf("failed to get issue %s: %w", key, ErrUnauthorized)
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", false, fmt.Errorf("failed to get issue %s: status %s", key, resp.Status)
	default:
		text, _ := io.ReadAll(resp.Body)
		ui.Infof("Issue %s not resolved: status_code: %d; text: %s", key, resp.StatusCode, strings.TrimSpace(string(text)))
		return "", false, nil
	}

	var issue struct {
		Summary string `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return "", false, fmt.Errorf("decode issue %s: %w", key, err)
	}
	return issue.Summary, true, nil
}
