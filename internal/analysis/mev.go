package analysis

import (
	"sort"
	"strings"

	"github.com/blockscope/blockscope/internal/pkg/types"

	"github.com/holiman/uint256"
)

// DetectMEV derives heuristic MEV indicators from a block's transaction
// list and the injected known-actor registry.
//
// Two independent signals are computed:
//
//  1. Senders transacting more than once within the block (a necessary but
//     not sufficient precondition for a sandwich pattern) are checked
//     against the registry; matches are reported as recognized extractive
//     actors.
//  2. For every transaction whose sender matches the registry and that
//     declares a priority fee, priority_fee x gas_limit is converted to
//     ether and accumulated as estimated MEV value.
//
// Exact MEV detection would require transaction-trace replay and
// DEX-reserve deltas, which are not available from block data alone. The
// heuristic trades recall for a cheap, explainable signal suitable for
// coarse trend monitoring, not settlement-grade accounting. Sandwich and
// arbitrage records are therefore never populated and the liquidation
// count stays zero.
func DetectMEV(transactions []Transaction, registry ActorRegistry) MevIndicators {
	positions := types.NewDefaultMap[string, []int](func() []int { return nil })
	for i, tx := range transactions {
		sender := strings.ToLower(tx.From)
		positions.Set(sender, append(positions.Get(sender), i))
	}

	botAddresses := types.NewSet[string]()
	for sender, indices := range positions.ToMap() {
		if len(indices) >= 2 && registry.IsKnownExtractiveActor(sender) {
			botAddresses.Add(sender)
		}
	}

	var estimatedMevEth float64
	for _, tx := range transactions {
		if tx.MaxPriorityFeePerGas == nil {
			continue
		}

		if registry.IsKnownExtractiveActor(strings.ToLower(tx.From)) {
			spend := new(uint256.Int).Mul(tx.MaxPriorityFeePerGas, uint256.NewInt(tx.GasLimit))
			estimatedMevEth += WeiToEther(spend)
		}
	}

	// Sorted output keeps the record deterministic for identical inputs.
	recognized := make([]string, 0, len(botAddresses))
	recognized = append(recognized, botAddresses.ToSlice()...)
	sort.Strings(recognized)

	return MevIndicators{
		SandwichAttacks: []SandwichAttack{},
		ArbitrageOps:    []ArbitrageOp{},
		Liquidations:    0,
		EstimatedMevEth: estimatedMevEth,
		MevBotAddresses: recognized,
	}
}
