package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/blockscope/blockscope/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLifecycle(height uint64) analysis.BlockLifecycle {
	builder := "beaverbuild.org"
	return analysis.BlockLifecycle{
		BlockNumber: height,
		BlockHash:   "0xhash",
		Timestamp:   1_700_000_000,
		Proposer:    "0xproposer",
		Builder:     &builder,
		Timing:      analysis.TimingMetrics{BlockTime: 12, Timestamp: 1_700_000_000},
		Gas: analysis.GasMetrics{
			GasUsed:            15_000_000,
			GasLimit:           30_000_000,
			Utilization:        50,
			BaseFeeGwei:        20.5,
			AvgPriorityFeeGwei: 1.5,
			FeesBurnedEth:      0.3075,
			PriorityFeesEth:    0.021,
		},
		Transactions: analysis.TransactionMetrics{
			TotalCount:    5,
			TypeBreakdown: analysis.TypeBreakdown{Legacy: 1, EIP2930: 0, EIP1559: 3, EIP4844Blob: 1},
			Ordering:      analysis.OrderingMetrics{SortedByPriority: false, Anomalies: 2},
		},
		MEV: analysis.MevIndicators{
			SandwichAttacks: []analysis.SandwichAttack{},
			ArbitrageOps:    []analysis.ArbitrageOp{},
			EstimatedMevEth: 0.000042,
			MevBotAddresses: []string{"0xbot"},
		},
		PBS: analysis.PbsMetrics{
			IsPbsBlock:     true,
			BuilderAddress: &builder,
			ExtraData:      builder,
		},
	}
}

func TestRows(t *testing.T) {
	t.Run("n records produce n plus one rows", func(t *testing.T) {
		lifecycles := []analysis.BlockLifecycle{
			sampleLifecycle(1),
			sampleLifecycle(2),
			sampleLifecycle(3),
		}

		rows := Rows(lifecycles)
		require.Len(t, rows, 4)
		assert.Equal(t, Header, rows[0])
	})

	t.Run("every row matches the header width", func(t *testing.T) {
		rows := Rows([]analysis.BlockLifecycle{sampleLifecycle(1)})
		for _, row := range rows {
			assert.Len(t, row, len(Header))
		}
	})

	t.Run("numeric fields match the source record's string form", func(t *testing.T) {
		lc := sampleLifecycle(19_000_000)

		row := Row(lc)
		assert.Equal(t, strconv.FormatUint(lc.BlockNumber, 10), row[0])
		assert.Equal(t, strconv.FormatUint(lc.Timestamp, 10), row[2])
		assert.Equal(t, strconv.FormatFloat(lc.Gas.Utilization, 'f', -1, 64), row[8])
		assert.Equal(t, strconv.FormatFloat(lc.Gas.BaseFeeGwei, 'f', -1, 64), row[9])
		assert.Equal(t, strconv.FormatFloat(lc.MEV.EstimatedMevEth, 'f', -1, 64), row[23])
		assert.Equal(t, strconv.Itoa(lc.Transactions.TotalCount), row[13])
	})

	t.Run("absent optionals render as empty cells", func(t *testing.T) {
		lc := sampleLifecycle(1)
		lc.Builder = nil
		lc.PBS.BuilderAddress = nil
		lc.PBS.IsPbsBlock = false

		row := Row(lc)
		assert.Equal(t, "", row[4])  // builder
		assert.Equal(t, "", row[26]) // builder_address
		assert.NotContains(t, row, "null")
		assert.NotContains(t, row, "None")
	})

	t.Run("mev columns count the finding lists", func(t *testing.T) {
		row := Row(sampleLifecycle(1))
		assert.Equal(t, "0", row[20]) // sandwich attacks
		assert.Equal(t, "0", row[21]) // arbitrage ops
		assert.Equal(t, "1", row[24]) // bot count
	})
}

func TestWriteCSV(t *testing.T) {
	t.Run("output parses back with the same cells", func(t *testing.T) {
		lifecycles := []analysis.BlockLifecycle{sampleLifecycle(1), sampleLifecycle(2)}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, lifecycles))

		parsed, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, Rows(lifecycles), parsed)
	})

	t.Run("empty input still writes the header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, nil))

		parsed, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, parsed, 1)
		assert.Equal(t, Header, parsed[0])
	})
}
