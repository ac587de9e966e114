// Package export maps BlockLifecycle records onto their outward
// representations: a fixed-column tabular form for persistence and a
// multi-section human-readable rendering for the console.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/blockscope/blockscope/internal/analysis"
)

// Header is the fixed column set of the tabular representation: every
// lifecycle field flattened one level, optional fields rendered as empty
// cells when absent. Order is part of the contract.
var Header = []string{
	"block_number",
	"block_hash",
	"timestamp",
	"proposer",
	"builder",
	"block_time",
	"gas_used",
	"gas_limit",
	"gas_utilization",
	"base_fee_gwei",
	"avg_priority_fee_gwei",
	"fees_burned_eth",
	"priority_fees_eth",
	"tx_count",
	"tx_legacy",
	"tx_eip2930",
	"tx_eip1559",
	"tx_eip4844",
	"tx_failed",
	"tx_ordering_anomalies",
	"mev_sandwich_attacks",
	"mev_arbitrage_ops",
	"mev_liquidations",
	"mev_estimated_eth",
	"mev_bot_count",
	"is_pbs_block",
	"builder_address",
	"extra_data",
}

// formatFloat renders a float the shortest way that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// optional renders a possibly-absent string as an empty cell, never as a
// literal null token.
func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Row flattens a single lifecycle record into one tabular row matching
// Header.
func Row(lc analysis.BlockLifecycle) []string {
	return []string{
		strconv.FormatUint(lc.BlockNumber, 10),
		lc.BlockHash,
		strconv.FormatUint(lc.Timestamp, 10),
		lc.Proposer,
		optional(lc.Builder),
		formatFloat(lc.Timing.BlockTime),
		strconv.FormatUint(lc.Gas.GasUsed, 10),
		strconv.FormatUint(lc.Gas.GasLimit, 10),
		formatFloat(lc.Gas.Utilization),
		formatFloat(lc.Gas.BaseFeeGwei),
		formatFloat(lc.Gas.AvgPriorityFeeGwei),
		formatFloat(lc.Gas.FeesBurnedEth),
		formatFloat(lc.Gas.PriorityFeesEth),
		strconv.Itoa(lc.Transactions.TotalCount),
		strconv.Itoa(lc.Transactions.TypeBreakdown.Legacy),
		strconv.Itoa(lc.Transactions.TypeBreakdown.EIP2930),
		strconv.Itoa(lc.Transactions.TypeBreakdown.EIP1559),
		strconv.Itoa(lc.Transactions.TypeBreakdown.EIP4844Blob),
		strconv.Itoa(lc.Transactions.FailedCount),
		strconv.Itoa(lc.Transactions.Ordering.Anomalies),
		strconv.Itoa(len(lc.MEV.SandwichAttacks)),
		strconv.Itoa(len(lc.MEV.ArbitrageOps)),
		strconv.Itoa(lc.MEV.Liquidations),
		formatFloat(lc.MEV.EstimatedMevEth),
		strconv.Itoa(len(lc.MEV.MevBotAddresses)),
		strconv.FormatBool(lc.PBS.IsPbsBlock),
		optional(lc.PBS.BuilderAddress),
		lc.PBS.ExtraData,
	}
}

// Rows converts a sequence of lifecycle records into the header row plus
// one data row per record.
func Rows(lifecycles []analysis.BlockLifecycle) [][]string {
	rows := make([][]string, 0, len(lifecycles)+1)
	rows = append(rows, Header)
	for _, lc := range lifecycles {
		rows = append(rows, Row(lc))
	}
	return rows
}

// WriteCSV writes the tabular representation of lifecycles to w as CSV.
func WriteCSV(w io.Writer, lifecycles []analysis.BlockLifecycle) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(Rows(lifecycles)); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
