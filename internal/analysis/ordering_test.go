package analysis

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTransactions(t *testing.T) {
	t.Run("per-type counts sum to total", func(t *testing.T) {
		txs := []Transaction{
			{Type: TxTypeLegacy},
			{Type: TxTypeAccessList},
			{Type: TxTypeFeeMarket},
			{Type: TxTypeFeeMarket},
			{Type: TxTypeBlob},
			{Type: 42}, // unrecognized discriminant
		}

		metrics := AnalyzeTransactions(txs)
		assert.Equal(t, 6, metrics.TotalCount)

		sum := metrics.TypeBreakdown.Legacy +
			metrics.TypeBreakdown.EIP2930 +
			metrics.TypeBreakdown.EIP1559 +
			metrics.TypeBreakdown.EIP4844Blob
		assert.Equal(t, metrics.TotalCount, sum)
	})

	t.Run("unrecognized type falls into the legacy bucket", func(t *testing.T) {
		metrics := AnalyzeTransactions([]Transaction{{Type: 99}})
		assert.Equal(t, 1, metrics.TypeBreakdown.Legacy)
	})

	t.Run("each known type lands in its own bucket", func(t *testing.T) {
		metrics := AnalyzeTransactions([]Transaction{
			{Type: TxTypeLegacy},
			{Type: TxTypeAccessList},
			{Type: TxTypeFeeMarket},
			{Type: TxTypeBlob},
		})

		assert.Equal(t, 1, metrics.TypeBreakdown.Legacy)
		assert.Equal(t, 1, metrics.TypeBreakdown.EIP2930)
		assert.Equal(t, 1, metrics.TypeBreakdown.EIP1559)
		assert.Equal(t, 1, metrics.TypeBreakdown.EIP4844Blob)
	})

	t.Run("failed count stays zero without receipt data", func(t *testing.T) {
		metrics := AnalyzeTransactions([]Transaction{{Type: TxTypeFeeMarket}})
		assert.Zero(t, metrics.FailedCount)
	})
}

func TestAnalyzeOrdering(t *testing.T) {
	t.Run("empty block is sorted by default", func(t *testing.T) {
		ordering := analyzeOrdering(nil)
		assert.True(t, ordering.SortedByPriority)
		assert.Zero(t, ordering.Anomalies)
	})

	t.Run("single transaction is sorted by default", func(t *testing.T) {
		ordering := analyzeOrdering([]Transaction{{MaxPriorityFeePerGas: uint256.NewInt(5)}})
		assert.True(t, ordering.SortedByPriority)
		assert.Zero(t, ordering.Anomalies)
	})

	t.Run("later higher fee is one anomaly", func(t *testing.T) {
		ordering := analyzeOrdering([]Transaction{
			{MaxPriorityFeePerGas: uint256.NewInt(1)},
			{MaxPriorityFeePerGas: uint256.NewInt(2)},
		})

		assert.False(t, ordering.SortedByPriority)
		assert.Equal(t, 1, ordering.Anomalies)
	})

	t.Run("descending fees report sorted", func(t *testing.T) {
		ordering := analyzeOrdering([]Transaction{
			{MaxPriorityFeePerGas: uint256.NewInt(5)},
			{MaxPriorityFeePerGas: uint256.NewInt(3)},
			{MaxPriorityFeePerGas: uint256.NewInt(3)},
			{MaxPriorityFeePerGas: uint256.NewInt(1)},
		})

		assert.True(t, ordering.SortedByPriority)
		assert.Zero(t, ordering.Anomalies)
	})

	t.Run("pairs with an absent fee are skipped", func(t *testing.T) {
		ordering := analyzeOrdering([]Transaction{
			{MaxPriorityFeePerGas: uint256.NewInt(1)},
			{}, // no declared fee: both adjacent pairs are ignored
			{MaxPriorityFeePerGas: uint256.NewInt(9)},
		})

		assert.True(t, ordering.SortedByPriority)
		assert.Zero(t, ordering.Anomalies)
	})

	t.Run("multiple anomalies are all counted", func(t *testing.T) {
		ordering := analyzeOrdering([]Transaction{
			{MaxPriorityFeePerGas: uint256.NewInt(1)},
			{MaxPriorityFeePerGas: uint256.NewInt(2)},
			{MaxPriorityFeePerGas: uint256.NewInt(3)},
		})

		assert.False(t, ordering.SortedByPriority)
		assert.Equal(t, 2, ordering.Anomalies)
	})

	t.Run("average deviation is the placeholder zero", func(t *testing.T) {
		ordering := analyzeOrdering([]Transaction{
			{MaxPriorityFeePerGas: uint256.NewInt(1)},
			{MaxPriorityFeePerGas: uint256.NewInt(2)},
		})

		assert.Zero(t, ordering.AvgDeviation)
	})
}
