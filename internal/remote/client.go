package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderClientID  = "x-client-id"
	HeaderRequestID = "X-Request-ID"
)

// CredentialsSource supplies the bearer token and the session client id.
type CredentialsSource interface {
	Credentials() (token string, clientID int)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialsSource
	location   *time.Location
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, location *time.Location, creds CredentialsSource, logger *zap.SugaredLogger) *Client {
	if location == nil {
		location = time.Local
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		location:   location,
		logger:     logger,
	}
}

type call struct {
	method    string
	path      string
	query     url.Values
	body      any
	clientID  int
	anonymous bool
}

// do sends one request. A nil result means the response had no body.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	apiErr := func(status int, msg string, err error) error {
		return &errs.RemoteAPIError{Method: cl.method, Path: cl.path, StatusCode: status, Message: msg, Err: err}
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var reader io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !cl.anonymous && c.creds != nil {
		token, clientID := c.creds.Credentials()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if cl.clientID > 0 {
			clientID = cl.clientID
		}
		if clientID > 0 {
			req.Header.Set(HeaderClientID, strconv.Itoa(clientID))
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apiErr(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apiErr(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	c.logger.Debugw("remote call",
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiErr(resp.StatusCode, message(data), nil)
	}
	if resp.StatusCode == http.StatusNoContent || isEmptyBody(data) {
		return nil, nil
	}
	return data, nil
}

// isEmptyBody treats no body, null and {} alike.
func isEmptyBody(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return true
	}
	if trimmed[0] != '{' {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}

// message pulls a readable error out of a failed response.
func message(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	msg := strings.TrimSpace(string(data))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

func decode[T any](cl call, data []byte, v *T) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &errs.RemoteAPIError{Method: cl.method, Path: cl.path, StatusCode: http.StatusOK, Message: "malformed response", Err: err}
	}
	return nil
}

func list[T any](ctx context.Context, c *Client, cl call) ([]T, error) {
	data, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if data == nil {
		return items, nil
	}
	if err := decode(cl, data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// one decodes a single object over fallback. An empty body yields fallback.
func one[T any](ctx context.Context, c *Client, cl call, fallback T) (T, error) {
	var zero T

	data, err := c.do(ctx, cl)
	if err != nil {
		return zero, err
	}
	if data != nil {
		if err := decode(cl, data, &fallback); err != nil {
			return zero, err
		}
	}
	return fallback, nil
}

func get(path string) call {
	return call{method: http.MethodGet, path: path}
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	cl := call{method: http.MethodPost, path: "/auth/login", body: creds, anonymous: true}
	token, err := one(ctx, c, cl, model.TokenResponse{})
	if err != nil {
		return "", err
	}
	if token.Token == "" {
		return "", fmt.Errorf("login: %w", errs.ErrInvalidToken)
	}
	return token.Token, nil
}

// Register creates a login through the auth service.
func (c *Client) Register(ctx context.Context, reg model.Registration) error {
	_, err := c.do(ctx, call{method: http.MethodPost, path: "/auth/create", body: reg, anonymous: true})
	return err
}
