// internal/ads/client.go
package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	commonerrors "adcraft/internal/common/errors"
	commonhttp "adcraft/internal/common/http"
	"adcraft/internal/common/logger"

	"gopkg.in/yaml.v3"
)

const (
	adsAPIBaseURL = "https://googleads.googleapis.com/v17"
	oauthTokenURL = "https://oauth2.googleapis.com/token"
)

// Row is one result row from a GAQL query, keyed by resource name
// (campaign, ad_group, metrics, ...).
type Row map[string]interface{}

// Account identifies one accessible customer account.
type Account struct {
	ID           string `json:"id"`
	ResourceName string `json:"resource_name"`
}

// Searcher is the query surface the tool service runs against. The REST
// client implements it; tests substitute a fake.
type Searcher interface {
	Search(ctx context.Context, customerID, query string) ([]Row, error)
	ListAccessibleCustomers(ctx context.Context) ([]Account, error)
	CustomerID() string
}

// Credentials mirrors the google-ads.yaml credentials file.
type Credentials struct {
	DeveloperToken  string `yaml:"developer_token"`
	ClientID        string `yaml:"client_id"`
	ClientSecret    string `yaml:"client_secret"`
	RefreshToken    string `yaml:"refresh_token"`
	LoginCustomerID string `yaml:"login_customer_id"`
}

// Client talks to the ad platform reporting API over REST.
type Client struct {
	creds    Credentials
	baseURL  string
	tokenURL string
	client   *commonhttp.Client
	logger   logger.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// LoadCredentials reads the credentials file. An empty path falls back to
// google-ads.yaml in the home directory, then the working directory.
func LoadCredentials(path string) (Credentials, error) {
	var creds Credentials

	resolved, err := resolveCredentialsPath(path)
	if err != nil {
		return creds, err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return creds, commonerrors.NewConfigurationInvalidError(fmt.Sprintf("cannot read credentials file %s: %s", resolved, err))
	}

	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return creds, commonerrors.NewConfigurationInvalidError(fmt.Sprintf("cannot parse credentials file %s: %s", resolved, err))
	}

	if creds.DeveloperToken == "" || creds.ClientID == "" || creds.ClientSecret == "" || creds.RefreshToken == "" {
		return creds, commonerrors.NewConfigurationInvalidError("credentials file is missing developer_token, client_id, client_secret or refresh_token")
	}

	return creds, nil
}

func resolveCredentialsPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, "google-ads.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if _, err := os.Stat("google-ads.yaml"); err == nil {
		return "google-ads.yaml", nil
	}

	return "", commonerrors.NewConfigurationInvalidError("google-ads.yaml not found; create it with your API credentials")
}

// NewClient builds a REST client from a credentials file.
func NewClient(credentialsPath string, log logger.Logger) (*Client, error) {
	creds, err := LoadCredentials(credentialsPath)
	if err != nil {
		return nil, err
	}
	return NewClientWithCredentials(creds, log), nil
}

// NewClientWithCredentials is the injection point for tests.
func NewClientWithCredentials(creds Credentials, log logger.Logger) *Client {
	return &Client{
		creds:    creds,
		baseURL:  adsAPIBaseURL,
		tokenURL: oauthTokenURL,
		client:   commonhttp.NewClient(30 * time.Second),
		logger:   log,
	}
}

// CustomerID returns the login customer ID from the credentials file.
func (c *Client) CustomerID() string {
	return c.creds.LoginCustomerID
}

// token returns a valid access token, refreshing it when the cached one
// is missing or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	form := url.Values{
		"client_id":     {c.creds.ClientID},
		"client_secret": {c.creds.ClientSecret},
		"refresh_token": {c.creds.RefreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh failed: status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}

	c.accessToken = parsed.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)

	return c.accessToken, nil
}

func (c *Client) authHeaders(ctx context.Context) (map[string]string, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization":   "Bearer " + token,
		"developer-token": c.creds.DeveloperToken,
	}
	if c.creds.LoginCustomerID != "" {
		headers["login-customer-id"] = c.creds.LoginCustomerID
	}
	return headers, nil
}

// Search executes a GAQL query and returns the result rows.
func (c *Client) Search(ctx context.Context, customerID, query string) ([]Row, error) {
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("search", err)
	}

	searchURL := fmt.Sprintf("%s/customers/%s/googleAds:search", c.baseURL, customerID)

	resp, err := c.client.PostJSON(ctx, searchURL, headers, map[string]string{"query": query})
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("search", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("search", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewQueryExecutionFailedError("search", fmt.Errorf("status %d: %s", resp.StatusCode, string(raw)))
	}

	var parsed struct {
		Results []Row `json:"results"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("search", err)
	}

	c.logger.Info("query executed", map[string]interface{}{
		"customer_id": customerID,
		"rows":        len(parsed.Results),
	})

	return parsed.Results, nil
}

// ListAccessibleCustomers returns every account the credentials can see.
func (c *Client) ListAccessibleCustomers(ctx context.Context) ([]Account, error) {
	headers, err := c.authHeaders(ctx)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_accounts", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/customers:listAccessibleCustomers", nil)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_accounts", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_accounts", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_accounts", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewQueryExecutionFailedError("list_accounts", fmt.Errorf("status %d: %s", resp.StatusCode, string(raw)))
	}

	var parsed struct {
		ResourceNames []string `json:"resourceNames"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("list_accounts", err)
	}

	accounts := make([]Account, 0, len(parsed.ResourceNames))
	for _, name := range parsed.ResourceNames {
		parts := strings.Split(name, "/")
		accounts = append(accounts, Account{
			ID:           parts[len(parts)-1],
			ResourceName: name,
		})
	}

	c.logger.Info("accessible customers listed", map[string]interface{}{
		"count": len(accounts),
	})

	return accounts, nil
}
