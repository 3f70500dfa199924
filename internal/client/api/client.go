// Package api is a thin HTTP client for the Presto store server. It keeps
// the bearer token obtained at login/registration and attaches it to every
// authenticated call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the bearer token from the last successful login/register.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error == "" {
			envelope.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}

	err := c.do(ctx, http.MethodPost, "/admin/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return err
	}

	c.token = out.Token
	return nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) error {
	var out struct {
		Token string `json:"token"`
	}

	err := c.do(ctx, http.MethodPost, "/admin/auth/register",
		map[string]string{"email": email, "password": password, "name": name}, &out)
	if err != nil {
		return err
	}

	c.token = out.Token
	return nil
}

// Logout tells the server and drops the local token. The server keeps the
// token valid (tokens are stateless); forgetting it here is what ends the
// session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/admin/auth/logout", map[string]string{}, nil); err != nil {
		return err
	}

	c.token = ""
	return nil
}

func (c *Client) GetStore(ctx context.Context) (json.RawMessage, error) {
	var out struct {
		Store json.RawMessage `json:"store"`
	}

	if err := c.do(ctx, http.MethodGet, "/store", nil, &out); err != nil {
		return nil, err
	}

	return out.Store, nil
}

func (c *Client) SetStore(ctx context.Context, store json.RawMessage) error {
	return c.do(ctx, http.MethodPut, "/store",
		map[string]json.RawMessage{"store": store}, nil)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}
