package ethereum

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/inspector"
	"github.com/blockscope/blockscope/internal/pkg/types"
)

type (
	// TransactionResponse represents a raw transaction object returned by
	// the Ethereum JSON-RPC API. Only the fields the analysis pipeline
	// consumes are decoded.
	TransactionResponse struct {
		Hash                 string    `json:"hash"`
		From                 string    `json:"from"`
		To                   string    `json:"to"`
		Type                 types.Hex `json:"type"`
		Value                types.Hex `json:"value"`
		Gas                  types.Hex `json:"gas"`
		MaxFeePerGas         types.Hex `json:"maxFeePerGas"`
		MaxPriorityFeePerGas types.Hex `json:"maxPriorityFeePerGas"`
	}

	// BlockResponse represents a block returned by eth_getBlockByNumber
	// with full transaction objects.
	BlockResponse struct {
		Hash          string                `json:"hash"`
		Number        types.Hex             `json:"number"`
		Miner         string                `json:"miner"`
		Timestamp     types.Hex             `json:"timestamp"`
		GasLimit      types.Hex             `json:"gasLimit"`
		GasUsed       types.Hex             `json:"gasUsed"`
		BaseFeePerGas types.Hex             `json:"baseFeePerGas"`
		ExtraData     string                `json:"extraData"`
		Transactions  []TransactionResponse `json:"transactions"`
	}
)

// toAnalysisTransaction converts a wire transaction into the analysis model.
// Absent fee fields (legacy transactions, empty quantities) become nil.
func (t TransactionResponse) toAnalysisTransaction() analysis.Transaction {
	return analysis.Transaction{
		Hash:                 t.Hash,
		From:                 t.From,
		To:                   t.To,
		Type:                 uint8(t.Type.Uint64()),
		Value:                t.Value.Uint256(),
		GasLimit:             t.Gas.Uint64(),
		MaxFeePerGas:         t.MaxFeePerGas.Uint256(),
		MaxPriorityFeePerGas: t.MaxPriorityFeePerGas.Uint256(),
	}
}

// toAnalysisBlock converts a wire block into the analysis model. Extra-data
// arrives hex-encoded; a malformed payload is carried through empty rather
// than failing the whole block.
func (b BlockResponse) toAnalysisBlock() analysis.Block {
	transactions := make([]analysis.Transaction, len(b.Transactions))
	for i, t := range b.Transactions {
		transactions[i] = t.toAnalysisTransaction()
	}

	extraData, err := hex.DecodeString(strings.TrimPrefix(b.ExtraData, "0x"))
	if err != nil {
		extraData = nil
	}

	return analysis.Block{
		Height:        b.Number.Uint64(),
		Hash:          b.Hash,
		Timestamp:     b.Timestamp.Uint64(),
		GasUsed:       b.GasUsed.Uint64(),
		GasLimit:      b.GasLimit.Uint64(),
		BaseFeePerGas: b.BaseFeePerGas.Uint256(),
		Proposer:      b.Miner,
		ExtraData:     extraData,
		Transactions:  transactions,
	}
}

// isNullResult reports whether a JSON-RPC result is the literal null, which
// is how Ethereum nodes signal an unknown block.
func isNullResult(data json.RawMessage) bool {
	return len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// fetchBlock retrieves a full block using the given block selector, which is
// either a hex-encoded height or the "latest" tag.
func (c *client) fetchBlock(ctx context.Context, selector string) (analysis.Block, error) {
	data, err := c.conn.Fetch(ctx, "eth_getBlockByNumber", selector, true)
	if err != nil {
		return analysis.Block{}, err
	}

	if isNullResult(data) {
		return analysis.Block{}, inspector.ErrBlockNotFound
	}

	var blockResponse BlockResponse
	if err := json.Unmarshal(data, &blockResponse); err != nil {
		return analysis.Block{}, err
	}

	return blockResponse.toAnalysisBlock(), nil
}

// FetchLatestHeight implements the inspector.Blockchain interface.
func (c *client) FetchLatestHeight(ctx context.Context) (uint64, error) {
	data, err := c.conn.Fetch(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var height types.Hex
	if err := json.Unmarshal(data, &height); err != nil {
		return 0, err
	}

	return height.Uint64(), nil
}

// FetchBlockByHeight implements the inspector.Blockchain interface.
func (c *client) FetchBlockByHeight(ctx context.Context, height uint64) (analysis.Block, error) {
	return c.fetchBlock(ctx, string(types.HexFromUint64(height)))
}

// FetchLatestBlock implements the inspector.Blockchain interface.
func (c *client) FetchLatestBlock(ctx context.Context) (analysis.Block, error) {
	return c.fetchBlock(ctx, "latest")
}
