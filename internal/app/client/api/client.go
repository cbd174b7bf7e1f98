package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/elvisding0307/durian-cli/internal/app/client/crypto"
	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

const userAgent = "Durian-Client/1.0"

// Client talks to the Durian server over its JSON HTTP API.
type Client struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
}

// New builds a Client for the given base URL (scheme included).
func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &Client{
		client:  client,
		log:     log,
		baseURL: baseURL,
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

// response is the envelope every endpoint answers with. data is decoded
// separately by the caller that knows its shape.
type response struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	c.log.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var env response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", account.ErrMalformedResponse, err)
	}

	c.log.Debug("api response", "path", path, "request_id", requestID, "code", env.Code)

	return &env, nil
}

func (c *Client) Register(ctx context.Context, username, password, corePassword string) error {
	body := map[string]string{
		"username":      username,
		"password":      crypto.HashLoginPassword(password),
		"core_password": crypto.HashCorePassword(corePassword),
	}

	env, err := c.doRequest(ctx, http.MethodPost, "/v1/register", body)
	if err != nil {
		return err
	}
	if env.Code != 0 {
		return &RemoteError{Code: env.Code, Msg: env.Msg}
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username, password, corePassword string) (string, error) {
	body := map[string]string{
		"username":      username,
		"password":      crypto.HashLoginPassword(password),
		"core_password": crypto.HashCorePassword(corePassword),
	}

	env, err := c.doRequest(ctx, http.MethodPost, "/v1/login", body)
	if err != nil {
		return "", err
	}
	if env.Code != 0 {
		return "", &RemoteError{Code: env.Code, Msg: env.Msg}
	}

	var data account.LoginData
	if len(env.Data) == 0 {
		return "", fmt.Errorf("%w: login response has no data", account.ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", fmt.Errorf("%w: %v", account.ErrMalformedResponse, err)
	}
	if data.Token == "" {
		return "", fmt.Errorf("%w: login response has no token", account.ErrMalformedResponse)
	}

	c.token = data.Token
	return data.Token, nil
}

func (c *Client) Verify(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/auth/verify", nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

func (c *Client) QueryAccounts(ctx context.Context, updateTime int64) (*account.QueryData, error) {
	path := fmt.Sprintf("/v1/account?update_time=%d", updateTime)

	env, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if env.Code != 0 {
		return nil, &RemoteError{Code: env.Code, Msg: env.Msg}
	}
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%w: query response has no data", account.ErrMalformedResponse)
	}

	var data account.QueryData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", account.ErrMalformedResponse, err)
	}

	return &data, nil
}

func (c *Client) InsertAccount(ctx context.Context, req account.InsertRequest) (*account.MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, req)
}

func (c *Client) UpdateAccount(ctx context.Context, req account.UpdateRequest) (*account.MutationResult, error) {
	return c.mutate(ctx, http.MethodPut, req)
}

func (c *Client) DeleteAccount(ctx context.Context, req account.DeleteRequest) (*account.MutationResult, error) {
	return c.mutate(ctx, http.MethodDelete, req)
}

func (c *Client) mutate(ctx context.Context, method string, body any) (*account.MutationResult, error) {
	env, err := c.doRequest(ctx, method, "/v1/account", body)
	if err != nil {
		return nil, err
	}
	return &account.MutationResult{OK: env.Code == 0, Message: env.Msg}, nil
}
