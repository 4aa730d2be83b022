package identitysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a minimal HTTP client for the identity service.
type Client struct {
	// BaseURL is the service root, e.g. "http://localhost:8080".
	BaseURL string

	// HTTPClient defaults to a client with a 10 second timeout.
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx response decoded into the shared error body.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identitysdk: %s (%d): %s", e.Code, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("identitysdk: unexpected status %d", e.StatusCode)
}

// Register creates a new account; a verification email follows.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/register", "", req, nil)
}

// VerifyEmail consumes a verification token from the emailed link.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	path := "/v1/auth/verify?token=" + url.QueryEscape(token)
	return c.do(ctx, http.MethodGet, path, "", nil, nil)
}

// ResendVerification requests a fresh verification email.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/resend", "", ResendRequest{Email: email}, nil)
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

// Refresh exchanges the refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", "", RefreshRequest{RefreshToken: refreshToken}, &out)
	return out, err
}

// Logout retires the session and revokes the presented access token.
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", accessToken, LogoutRequest{RefreshToken: refreshToken}, nil)
}

// Profile fetches the caller's account.
func (c *Client) Profile(ctx context.Context, accessToken string) (AccountResponse, error) {
	var out AccountResponse
	err := c.do(ctx, http.MethodGet, "/v1/profile", accessToken, nil, &out)
	return out, err
}

// UpdateProfile applies a self-service profile update.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, req ProfileUpdateRequest) (AccountResponse, error) {
	var out AccountResponse
	err := c.do(ctx, http.MethodPut, "/v1/profile", accessToken, req, &out)
	return out, err
}

// ListAccounts fetches every account. Requires the admin role.
func (c *Client) ListAccounts(ctx context.Context, accessToken string) (AccountListResponse, error) {
	var out AccountListResponse
	err := c.do(ctx, http.MethodGet, "/v1/admin/accounts", accessToken, nil, &out)
	return out, err
}

// AdminUpdateProfile edits another account's profile, skipping the
// monthly cooldown. Requires the admin role.
func (c *Client) AdminUpdateProfile(ctx context.Context, accessToken, email string, req ProfileUpdateRequest) (AccountResponse, error) {
	path := "/v1/admin/accounts/" + url.PathEscape(email) + "/profile"
	var out AccountResponse
	err := c.do(ctx, http.MethodPut, path, accessToken, req, &out)
	return out, err
}

// AuditTrail fetches the newest audit entries for one account email.
// Requires the admin role.
func (c *Client) AuditTrail(ctx context.Context, accessToken, email string, limit int) (AuditListResponse, error) {
	path := "/v1/admin/audit?email=" + url.QueryEscape(email)
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}
	var out AuditListResponse
	err := c.do(ctx, http.MethodGet, path, accessToken, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Code = e.Error
			apiErr.Description = e.ErrorDescription
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
