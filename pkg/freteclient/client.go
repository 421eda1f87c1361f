package freteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"controle_frete/internal/models"
	"controle_frete/internal/services"
)

// ErrUnauthorized means the server rejected the session token. Consumers
// should treat it as a terminal session-expired condition, not a retry.
var ErrUnauthorized = errors.New("não autorizado")

// Client talks to the freight API carrying the session token on every call.
type Client struct {
	BaseURL      string
	SessionToken string
	HTTPClient   *http.Client
}

func New(baseURL, sessionToken string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:      baseURL,
		SessionToken: sessionToken,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ping is the heartbeat probe: a list request whose body is discarded.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/fretes", nil, nil)
}

func (c *Client) ListFretes(ctx context.Context) ([]models.Frete, error) {
	// Cache-busting timestamp, same trick the browser client uses.
	path := "/api/fretes?_t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	var fretes []models.Frete
	if err := c.do(ctx, http.MethodGet, path, nil, &fretes); err != nil {
		return nil, err
	}
	return fretes, nil
}

func (c *Client) GetFrete(ctx context.Context, id string) (*models.Frete, error) {
	var frete models.Frete
	if err := c.do(ctx, http.MethodGet, "/api/fretes/"+id, nil, &frete); err != nil {
		return nil, err
	}
	return &frete, nil
}

func (c *Client) CreateFrete(ctx context.Context, frete *models.Frete) (*models.Frete, error) {
	var criado models.Frete
	if err := c.do(ctx, http.MethodPost, "/api/fretes", frete, &criado); err != nil {
		return nil, err
	}
	return &criado, nil
}

func (c *Client) UpdateFrete(ctx context.Context, id string, frete *models.Frete) (*models.Frete, error) {
	var atualizado models.Frete
	if err := c.do(ctx, http.MethodPut, "/api/fretes/"+id, frete, &atualizado); err != nil {
		return nil, err
	}
	return &atualizado, nil
}

// ToggleStatus asks the server to flip status/data_entrega for the record.
func (c *Client) ToggleStatus(ctx context.Context, id string) (*models.Frete, error) {
	var atualizado models.Frete
	if err := c.do(ctx, http.MethodPatch, "/api/fretes/"+id, nil, &atualizado); err != nil {
		return nil, err
	}
	return &atualizado, nil
}

func (c *Client) DeleteFrete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/fretes/"+id, nil, nil)
}

func (c *Client) ListPrecos(ctx context.Context, page, limit int, marca, search string) (*services.PrecoPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if marca != "" {
		query.Set("marca", marca)
	}
	if search != "" {
		query.Set("search", search)
	}

	path := "/api/precos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var pagina services.PrecoPage
	if err := c.do(ctx, http.MethodGet, path, nil, &pagina); err != nil {
		return nil, err
	}
	return &pagina, nil
}

func (c *Client) Marcas(ctx context.Context) ([]string, error) {
	var marcas []string
	if err := c.do(ctx, http.MethodGet, "/api/marcas", nil, &marcas); err != nil {
		return nil, err
	}
	return marcas, nil
}

func (c *Client) CreatePreco(ctx context.Context, preco *models.Preco) (*models.Preco, error) {
	var criado models.Preco
	if err := c.do(ctx, http.MethodPost, "/api/precos", preco, &criado); err != nil {
		return nil, err
	}
	return &criado, nil
}

func (c *Client) UpdatePreco(ctx context.Context, id string, preco *models.Preco) (*models.Preco, error) {
	var atualizado models.Preco
	if err := c.do(ctx, http.MethodPut, "/api/precos/"+id, preco, &atualizado); err != nil {
		return nil, err
	}
	return &atualizado, nil
}

func (c *Client) DeletePreco(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/precos/"+id, nil, nil)
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Session-Token", c.SessionToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
