package analysis

// TimingMetrics describes when a block was produced relative to its
// predecessor.
type TimingMetrics struct {
	// BlockTime is the delta to the previous block in seconds, or 0 when no
	// predecessor was available.
	BlockTime float64 `json:"block_time"`

	// Timestamp is the raw block timestamp.
	Timestamp uint64 `json:"timestamp"`

	// PropagationDelay would require a network-level timing source, which
	// this pipeline does not have; it is always absent.
	PropagationDelay *float64 `json:"propagation_delay"`
}

// GasMetrics captures the gas-market behavior of a single block.
type GasMetrics struct {
	GasUsed            uint64  `json:"gas_used"`
	GasLimit           uint64  `json:"gas_limit"`
	Utilization        float64 `json:"utilization"`           // percent, unclamped above 100
	BaseFeeGwei        float64 `json:"base_fee_gwei"`         // 0.0 for pre-fee-market blocks
	AvgPriorityFeeGwei float64 `json:"avg_priority_fee_gwei"` // over txs declaring a priority fee
	FeesBurnedEth      float64 `json:"fees_burned_eth"`       // base fee x gas used
	PriorityFeesEth    float64 `json:"priority_fees_eth"`     // total to the proposer
}

// TypeBreakdown counts transactions per protocol type. The four buckets
// always sum to the block's total transaction count.
type TypeBreakdown struct {
	Legacy      int `json:"legacy"`
	EIP2930     int `json:"eip2930"`
	EIP1559     int `json:"eip1559"`
	EIP4844Blob int `json:"eip4844_blob"`
}

// OrderingMetrics reports whether the block's transactions follow a
// descending priority-fee order.
type OrderingMetrics struct {
	SortedByPriority bool    `json:"sorted_by_priority"`
	Anomalies        int     `json:"anomalies"`
	AvgDeviation     float64 `json:"avg_deviation"` // placeholder, fixed at 0.0
}

// TransactionMetrics aggregates the per-type breakdown and ordering
// analysis of a block's transaction list.
type TransactionMetrics struct {
	TotalCount    int             `json:"total_count"`
	TypeBreakdown TypeBreakdown   `json:"type_breakdown"`
	Ordering      OrderingMetrics `json:"ordering"`

	// FailedCount requires receipt data this pipeline does not consume; it
	// is always 0.
	FailedCount int `json:"failed_count"`
}

// SandwichAttack describes a frontrun/victim/backrun triple. The current
// heuristic never constructs these records; the type exists so consumers of
// the lifecycle record have a stable shape when detection is extended.
type SandwichAttack struct {
	FrontrunTx         string  `json:"frontrun_tx"`
	VictimTx           string  `json:"victim_tx"`
	BackrunTx          string  `json:"backrun_tx"`
	EstimatedProfitEth float64 `json:"estimated_profit_eth"`
	DEX                string  `json:"dex"`
}

// ArbitrageOp describes a multi-hop swap-path arbitrage. Like
// SandwichAttack, it is part of the data model but never populated by the
// current heuristic.
type ArbitrageOp struct {
	TxHash             string   `json:"tx_hash"`
	Path               []string `json:"path"`
	EstimatedProfitEth float64  `json:"estimated_profit_eth"`
	DexesInvolved      []string `json:"dexes_involved"`
}

// MevIndicators holds the heuristic MEV signals derived from a block.
type MevIndicators struct {
	SandwichAttacks []SandwichAttack `json:"sandwich_attacks"`
	ArbitrageOps    []ArbitrageOp    `json:"arbitrage_ops"`
	Liquidations    int              `json:"liquidations"`
	EstimatedMevEth float64          `json:"estimated_mev_eth"`
	MevBotAddresses []string         `json:"mev_bot_addresses"`
}

// PbsMetrics holds the proposer-builder-separation attribution derived from
// the block's extra-data field.
type PbsMetrics struct {
	IsPbsBlock bool `json:"is_pbs_block"`

	// BuilderAddress is the entire decoded extra-data string whenever a
	// known builder fragment matches, nil otherwise.
	BuilderAddress *string `json:"builder_address"`

	// BuilderPaymentEth would require decoding the block's final coinbase
	// transfer; it is never computed.
	BuilderPaymentEth *float64 `json:"builder_payment_eth"`

	ExtraData string `json:"extra_data"`
}

// BlockLifecycle is the pipeline's product: a single immutable record
// aggregating every analysis of one block. Once assembled it is never
// mutated; each analysis run produces a fresh record.
type BlockLifecycle struct {
	BlockNumber uint64  `json:"block_number"`
	BlockHash   string  `json:"block_hash"`
	Timestamp   uint64  `json:"timestamp"`
	Proposer    string  `json:"proposer"`
	Builder     *string `json:"builder"`

	Timing       TimingMetrics      `json:"timing"`
	Gas          GasMetrics         `json:"gas"`
	Transactions TransactionMetrics `json:"transactions"`
	MEV          MevIndicators      `json:"mev"`
	PBS          PbsMetrics         `json:"pbs"`
}

// ActorRegistry answers whether an address belongs to a known extractive
// actor. Implementations must be safe for concurrent reads.
type ActorRegistry interface {
	IsKnownExtractiveActor(address string) bool
}

// BuilderRegistry answers whether free-form block metadata carries a known
// block-builder signature. Implementations must be safe for concurrent reads.
type BuilderRegistry interface {
	IsKnownBuilderSignature(extraData string) bool
}

// Registry combines the two lookup capabilities the pipeline consumes. The
// table behind it is injected at construction time, never compiled-in
// global state, so tests can swap in doubles and registries can be updated
// without recompilation.
type Registry interface {
	ActorRegistry
	BuilderRegistry
}

// Assembler orchestrates the individual analyzers against one block,
// producing BlockLifecycle records. It holds only the read-only registry,
// so a single Assembler may be shared across goroutines.
type Assembler struct {
	registry Registry
}

// NewAssembler returns an Assembler using the given registry for MEV actor
// and builder signature lookups.
func NewAssembler(registry Registry) *Assembler {
	return &Assembler{registry: registry}
}

// Assemble derives the full lifecycle record for block. prevTimestamp is
// the predecessor's timestamp, or nil for the genesis block or when the
// predecessor could not be retrieved; without it the block time is 0, a
// display simplification rather than an error.
func (a *Assembler) Assemble(block Block, prevTimestamp *uint64) BlockLifecycle {
	var blockTime float64
	if prevTimestamp != nil && block.Timestamp >= *prevTimestamp {
		blockTime = float64(block.Timestamp - *prevTimestamp)
	}

	pbs := AnalyzePBS(block, a.registry)

	return BlockLifecycle{
		BlockNumber: block.Height,
		BlockHash:   block.Hash,
		Timestamp:   block.Timestamp,
		Proposer:    block.Proposer,
		Builder:     pbs.BuilderAddress,
		Timing: TimingMetrics{
			BlockTime: blockTime,
			Timestamp: block.Timestamp,
		},
		Gas:          CalculateGasMetrics(block),
		Transactions: AnalyzeTransactions(block.Transactions),
		MEV:          DetectMEV(block.Transactions, a.registry),
		PBS:          pbs,
	}
}
