package explorer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"country-explorer/internal/apperror"
	"country-explorer/internal/models"
)

// AuthClient calls the auth service. Failures come back as *apperror.Error
// rebuilt from the service's {status, message, code} body.
type AuthClient struct {
	c httpClient
}

func NewAuthClient(opts Options) *AuthClient {
	return &AuthClient{c: newHTTPClient("auth", strings.TrimRight(opts.AuthURL, "/"), opts.HTTPClient, opts.Logger)}
}

func (ac *AuthClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := ac.post(ctx, "/api/auth/register", req, http.StatusCreated, &out)
	return out, err
}

func (ac *AuthClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := ac.post(ctx, "/api/auth/login", req, http.StatusOK, &out)
	return out, err
}

func (ac *AuthClient) post(ctx context.Context, path string, in interface{}, want int, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ac.c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("auth: read response: %w", err)
	}

	if resp.StatusCode != want {
		var body apperror.Body
		if err := json.Unmarshal(raw, &body); err != nil || body.Code == "" {
			return &APIError{Service: "auth", Status: resp.StatusCode, Body: string(raw)}
		}
		return apperror.FromBody(body)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("auth: decode response: %w", err)
	}
	return nil
}
