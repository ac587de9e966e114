package ethereum

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/blockscope/blockscope/internal/inspector"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConn replays canned JSON-RPC results keyed by method.
type stubConn struct {
	results map[string]json.RawMessage
	err     error

	lastMethod string
	lastParams []any
}

func (s *stubConn) Fetch(_ context.Context, method string, params ...any) (json.RawMessage, error) {
	s.lastMethod = method
	s.lastParams = params

	if s.err != nil {
		return nil, s.err
	}
	return s.results[method], nil
}

const sampleBlockJSON = `{
	"hash": "0xabc123",
	"number": "0x121eac0",
	"miner": "0x95222290dd7278aa3ddd389cc1e1d165cc4bafe5",
	"timestamp": "0x65a7b2c0",
	"gasLimit": "0x1c9c380",
	"gasUsed": "0xe4e1c0",
	"baseFeePerGas": "0x4a817c800",
	"extraData": "0x626561766572",
	"transactions": [
		{
			"hash": "0xtx1",
			"from": "0xAAA",
			"to": "0xBBB",
			"type": "0x2",
			"value": "0xde0b6b3a7640000",
			"gas": "0x5208",
			"maxFeePerGas": "0x77359400",
			"maxPriorityFeePerGas": "0x3b9aca00"
		},
		{
			"hash": "0xtx2",
			"from": "0xCCC",
			"to": "0xDDD",
			"type": "0x0",
			"value": "0x0",
			"gas": "0x5208"
		}
	]
}`

func TestClient_FetchBlockByHeight(t *testing.T) {
	t.Run("decodes a full block", func(t *testing.T) {
		conn := &stubConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": json.RawMessage(sampleBlockJSON),
		}}
		c := NewClient(conn)

		block, err := c.FetchBlockByHeight(t.Context(), 19_000_000)
		require.NoError(t, err)

		assert.Equal(t, "eth_getBlockByNumber", conn.lastMethod)
		require.Len(t, conn.lastParams, 2)
		assert.Equal(t, "0x121eac0", conn.lastParams[0])
		assert.Equal(t, true, conn.lastParams[1])

		assert.Equal(t, uint64(19_000_000), block.Height)
		assert.Equal(t, "0xabc123", block.Hash)
		assert.Equal(t, "0x95222290dd7278aa3ddd389cc1e1d165cc4bafe5", block.Proposer)
		assert.Equal(t, uint64(0x65a7b2c0), block.Timestamp)
		assert.Equal(t, uint64(30_000_000), block.GasLimit)
		assert.Equal(t, uint64(15_000_000), block.GasUsed)
		assert.Equal(t, uint256.NewInt(20_000_000_000), block.BaseFeePerGas)
		assert.Equal(t, []byte("beaver"), block.ExtraData)

		require.Len(t, block.Transactions, 2)

		feeMarket := block.Transactions[0]
		assert.Equal(t, "0xtx1", feeMarket.Hash)
		assert.Equal(t, uint8(2), feeMarket.Type)
		assert.Equal(t, uint64(21_000), feeMarket.GasLimit)
		assert.Equal(t, uint256.NewInt(1_000_000_000_000_000_000), feeMarket.Value)
		assert.Equal(t, uint256.NewInt(2_000_000_000), feeMarket.MaxFeePerGas)
		assert.Equal(t, uint256.NewInt(1_000_000_000), feeMarket.MaxPriorityFeePerGas)

		legacy := block.Transactions[1]
		assert.Equal(t, uint8(0), legacy.Type)
		assert.Nil(t, legacy.MaxFeePerGas)
		assert.Nil(t, legacy.MaxPriorityFeePerGas)
	})

	t.Run("null result maps to ErrBlockNotFound", func(t *testing.T) {
		conn := &stubConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": json.RawMessage("null"),
		}}
		c := NewClient(conn)

		_, err := c.FetchBlockByHeight(t.Context(), 1)
		assert.ErrorIs(t, err, inspector.ErrBlockNotFound)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		conn := &stubConn{err: errors.New("connection refused")}
		c := NewClient(conn)

		_, err := c.FetchBlockByHeight(t.Context(), 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, inspector.ErrBlockNotFound)
	})

	t.Run("malformed extra data is dropped, not fatal", func(t *testing.T) {
		conn := &stubConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": json.RawMessage(`{"number": "0x1", "extraData": "0xzz"}`),
		}}
		c := NewClient(conn)

		block, err := c.FetchBlockByHeight(t.Context(), 1)
		require.NoError(t, err)
		assert.Nil(t, block.ExtraData)
	})
}

func TestClient_FetchLatestBlock(t *testing.T) {
	t.Run("uses the latest tag", func(t *testing.T) {
		conn := &stubConn{results: map[string]json.RawMessage{
			"eth_getBlockByNumber": json.RawMessage(sampleBlockJSON),
		}}
		c := NewClient(conn)

		block, err := c.FetchLatestBlock(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "latest", conn.lastParams[0])
		assert.Equal(t, uint64(19_000_000), block.Height)
	})
}

func TestClient_FetchLatestHeight(t *testing.T) {
	t.Run("decodes the hex quantity", func(t *testing.T) {
		conn := &stubConn{results: map[string]json.RawMessage{
			"eth_blockNumber": json.RawMessage(`"0x121eac0"`),
		}}
		c := NewClient(conn)

		height, err := c.FetchLatestHeight(t.Context())
		require.NoError(t, err)
		assert.Equal(t, uint64(19_000_000), height)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		conn := &stubConn{err: errors.New("timeout")}
		c := NewClient(conn)

		_, err := c.FetchLatestHeight(t.Context())
		assert.Error(t, err)
	})
}
