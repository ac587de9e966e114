// Package jsonrpc implements a generic JSON-RPC 2.0 client over HTTP,
// suitable for talking to blockchain nodes and other JSON-RPC services.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrProviderReturnedError indicates that the remote JSON-RPC server
// answered with an error object instead of a result.
var ErrProviderReturnedError = errors.New("provider error")

// response represents a standard JSON-RPC 2.0 response envelope.
type response struct {
	JsonRPC string `json:"jsonrpc"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Err converts an embedded JSON-RPC error object, if any, into a Go error
// wrapping ErrProviderReturnedError.
func (r response) Err() error {
	if r.Error == nil {
		return nil
	}

	return fmt.Errorf("%w: [%d] - %s", ErrProviderReturnedError, r.Error.Code, r.Error.Message)
}

// Client abstracts a JSON-RPC connection so callers can be tested against
// doubles.
type Client interface {
	// Fetch sends a JSON-RPC request with the given method and parameters,
	// returning the raw result payload. A "null" result is returned as-is;
	// interpreting it is the caller's concern.
	Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// client is the default Client implementation. Request ids are random UUIDs.
type client struct {
	providerEndpoint string
	httpClient       *http.Client
}

var _ Client = (*client)(nil)

// Fetch implements the Client interface.
func (c *client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  method,
		"params":  params,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer res.Body.Close()

	var data response
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", method, err)
	}

	return data.Result, data.Err()
}

// NewClient returns a Client that sends JSON-RPC requests to
// providerEndpoint using the supplied HTTP client.
func NewClient(httpClient *http.Client, providerEndpoint string) *client {
	return &client{
		providerEndpoint: providerEndpoint,
		httpClient:       httpClient,
	}
}
