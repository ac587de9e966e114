// Package ethereum implements the inspector.Blockchain interface for
// Ethereum-compatible nodes using a JSON-RPC client.
package ethereum

import (
	"github.com/blockscope/blockscope/internal/inspector"
	"github.com/blockscope/blockscope/internal/pkg/transport/jsonrpc"
)

// client talks to an Ethereum node over JSON-RPC and converts its wire
// responses into the analysis block model.
type client struct {
	conn jsonrpc.Client
}

// Ensure client implements the inspector.Blockchain interface at compile time.
var _ inspector.Blockchain = (*client)(nil)

// NewClient creates an Ethereum blockchain client on top of the provided
// JSON-RPC connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}
