// Package analysis implements the block analysis pipeline: a set of pure,
// deterministic transformations that turn one raw block (plus its immediate
// predecessor's timestamp) into a BlockLifecycle record covering timing, gas
// market behavior, transaction composition and ordering, heuristic MEV
// indicators, and proposer-builder-separation attribution.
//
// Nothing in this package performs I/O or mutates shared state, so every
// function is safe to call concurrently across independent blocks.
package analysis

import "github.com/holiman/uint256"

// Transaction type discriminants as defined by the execution layer.
// Values outside this range are bucketed as legacy during analysis.
const (
	TxTypeLegacy     uint8 = 0 // pre-typed transactions
	TxTypeAccessList uint8 = 1 // EIP-2930
	TxTypeFeeMarket  uint8 = 2 // EIP-1559
	TxTypeBlob       uint8 = 3 // EIP-4844
)

// Transaction is the analyzer's view of a single transaction inside a
// block. Immutable once fetched.
type Transaction struct {
	Hash                 string
	From                 string
	To                   string // empty for contract creation
	Value                *uint256.Int
	GasLimit             uint64
	MaxFeePerGas         *uint256.Int // nil when not declared
	MaxPriorityFeePerGas *uint256.Int // nil when not declared
	Type                 uint8
}

// Block is the analyzer's view of one execution-layer block. Immutable once
// fetched; the pipeline only ever reads it.
type Block struct {
	Height        uint64
	Hash          string
	Timestamp     uint64 // seconds since epoch
	GasUsed       uint64
	GasLimit      uint64
	BaseFeePerGas *uint256.Int // nil for pre-fee-market blocks
	Proposer      string       // block producer / author address
	ExtraData     []byte       // free-form metadata field
	Transactions  []Transaction
}
