package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrSessionInvalid means the portal answered but rejected the token.
// Transport failures are returned as ordinary errors instead.
var ErrSessionInvalid = errors.New("sessão inválida")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Session struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type verifyRequest struct {
	SessionToken string `json:"sessionToken"`
}

type verifyResponse struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Session Session `json:"session"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VerifySession delegates token validation to the external portal.
func (c *Client) VerifySession(ctx context.Context, sessionToken string) (*Session, error) {
	jsonData, err := json.Marshal(verifyRequest{SessionToken: sessionToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verify request: %w", err)
	}

	url := fmt.Sprintf("%s/api/verify-session", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach portal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ErrSessionInvalid
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read portal response: %w", err)
	}

	var response verifyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse portal response: %w", err)
	}

	if !response.Valid {
		if response.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrSessionInvalid, response.Message)
		}
		return nil, ErrSessionInvalid
	}

	return &response.Session, nil
}
