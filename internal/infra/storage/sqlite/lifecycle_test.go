package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/blockscope/blockscope/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	storage, err := NewStorage(filepath.Join(t.TempDir(), "blockscope.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return storage
}

func storedLifecycle(height uint64) analysis.BlockLifecycle {
	builder := "rsync-builder.xyz"
	return analysis.BlockLifecycle{
		BlockNumber: height,
		BlockHash:   "0xhash",
		Timestamp:   1_700_000_000,
		Proposer:    "0xproposer",
		Builder:     &builder,
		Gas:         analysis.GasMetrics{Utilization: 42.5},
		Transactions: analysis.TransactionMetrics{
			TotalCount: 3,
		},
		MEV: analysis.MevIndicators{
			SandwichAttacks: []analysis.SandwichAttack{},
			ArbitrageOps:    []analysis.ArbitrageOp{},
			EstimatedMevEth: 0.01,
			MevBotAddresses: []string{"0xbot"},
		},
		PBS: analysis.PbsMetrics{
			IsPbsBlock:     true,
			BuilderAddress: &builder,
			ExtraData:      builder,
		},
	}
}

func TestStorage_SaveLifecycles(t *testing.T) {
	t.Run("round trips a full record", func(t *testing.T) {
		storage := newTestStorage(t)

		want := storedLifecycle(100)
		require.NoError(t, storage.SaveLifecycle(t.Context(), want))

		got, err := storage.LoadLifecycle(t.Context(), 100)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("saving the same block twice replaces the row", func(t *testing.T) {
		storage := newTestStorage(t)

		first := storedLifecycle(100)
		require.NoError(t, storage.SaveLifecycle(t.Context(), first))

		second := storedLifecycle(100)
		second.Gas.Utilization = 99.9
		require.NoError(t, storage.SaveLifecycle(t.Context(), second))

		got, err := storage.LoadLifecycle(t.Context(), 100)
		require.NoError(t, err)
		assert.Equal(t, 99.9, got.Gas.Utilization)
	})

	t.Run("nil builder is stored as a null column", func(t *testing.T) {
		storage := newTestStorage(t)

		lc := storedLifecycle(101)
		lc.Builder = nil
		lc.PBS.BuilderAddress = nil
		lc.PBS.IsPbsBlock = false
		require.NoError(t, storage.SaveLifecycle(t.Context(), lc))

		got, err := storage.LoadLifecycle(t.Context(), 101)
		require.NoError(t, err)
		assert.Nil(t, got.Builder)
	})

	t.Run("missing block reports no rows", func(t *testing.T) {
		storage := newTestStorage(t)

		_, err := storage.LoadLifecycle(t.Context(), 404)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		storage := newTestStorage(t)
		assert.NoError(t, storage.SaveLifecycles(t.Context(), nil))
	})
}
