package export

import (
	"fmt"
	"strings"

	"github.com/blockscope/blockscope/internal/analysis"
)

const separator = "═══════════════════════════════════════════════════"

// Render produces the multi-section human-readable view of a single
// lifecycle record, grouping fields under Timing, Gas, Transactions, MEV,
// and PBS headings. Presentation only; not part of the export contract.
func Render(lc analysis.BlockLifecycle) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", separator)
	fmt.Fprintf(&b, "Block Number: %d\n", lc.BlockNumber)
	fmt.Fprintf(&b, "Block Hash:   %s\n", lc.BlockHash)
	fmt.Fprintf(&b, "Timestamp:    %d\n", lc.Timestamp)
	fmt.Fprintf(&b, "Proposer:     %s\n", lc.Proposer)
	fmt.Fprintf(&b, "%s\n", separator)

	fmt.Fprintf(&b, "\nTIMING METRICS\n")
	fmt.Fprintf(&b, "  Block Time: %.2fs\n", lc.Timing.BlockTime)

	fmt.Fprintf(&b, "\nGAS METRICS\n")
	fmt.Fprintf(&b, "  Gas Used: %d / %d (%.1f%%)\n", lc.Gas.GasUsed, lc.Gas.GasLimit, lc.Gas.Utilization)
	fmt.Fprintf(&b, "  Base Fee: %.2f gwei\n", lc.Gas.BaseFeeGwei)
	fmt.Fprintf(&b, "  Avg Priority Fee: %.2f gwei\n", lc.Gas.AvgPriorityFeeGwei)
	fmt.Fprintf(&b, "  Fees Burned: %.4f ETH\n", lc.Gas.FeesBurnedEth)
	fmt.Fprintf(&b, "  Priority Fees: %.4f ETH\n", lc.Gas.PriorityFeesEth)

	fmt.Fprintf(&b, "\nTRANSACTIONS\n")
	fmt.Fprintf(&b, "  Total: %d\n", lc.Transactions.TotalCount)
	fmt.Fprintf(&b, "  Failed: %d\n", lc.Transactions.FailedCount)
	fmt.Fprintf(&b, "  Types: Legacy(%d), EIP-2930(%d), EIP-1559(%d), EIP-4844(%d)\n",
		lc.Transactions.TypeBreakdown.Legacy,
		lc.Transactions.TypeBreakdown.EIP2930,
		lc.Transactions.TypeBreakdown.EIP1559,
		lc.Transactions.TypeBreakdown.EIP4844Blob,
	)
	fmt.Fprintf(&b, "  Sorted By Priority: %t (%d anomalies)\n",
		lc.Transactions.Ordering.SortedByPriority,
		lc.Transactions.Ordering.Anomalies,
	)

	fmt.Fprintf(&b, "\nMEV INDICATORS\n")
	fmt.Fprintf(&b, "  Sandwich Attacks: %d\n", len(lc.MEV.SandwichAttacks))
	fmt.Fprintf(&b, "  Arbitrage Ops: %d\n", len(lc.MEV.ArbitrageOps))
	fmt.Fprintf(&b, "  Liquidations: %d\n", lc.MEV.Liquidations)
	fmt.Fprintf(&b, "  Estimated MEV: %.4f ETH\n", lc.MEV.EstimatedMevEth)

	fmt.Fprintf(&b, "\nPBS METRICS\n")
	fmt.Fprintf(&b, "  PBS Block: %s\n", yesNo(lc.PBS.IsPbsBlock))
	if lc.PBS.BuilderAddress != nil {
		fmt.Fprintf(&b, "  Builder: %s\n", *lc.PBS.BuilderAddress)
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
