// Package sqlite persists assembled lifecycle records in a local SQLite
// database, giving range inspections and long monitoring sessions a
// queryable history without any external infrastructure.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/blockscope/blockscope/internal/analysis"

	_ "modernc.org/sqlite"
)

// writeTimeout bounds each write transaction.
const writeTimeout = 10 * time.Second

type Storage struct {
	db *sql.DB
}

// NewStorage opens (or creates) the database at dbPath and ensures the
// schema exists.
func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		return nil, errors.New("db path is required")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	// Flat columns cover the fields queries filter and sort on; the full
	// record is kept as JSON so nothing is lost to the flattening.
	schema := `CREATE TABLE IF NOT EXISTS block_lifecycles (
		block_number INTEGER PRIMARY KEY,
		block_hash TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		proposer TEXT NOT NULL,
		builder TEXT,
		gas_utilization REAL NOT NULL,
		tx_count INTEGER NOT NULL,
		estimated_mev_eth REAL NOT NULL,
		is_pbs_block INTEGER NOT NULL,
		record TEXT NOT NULL
	)`

	_, err := db.Exec(schema)
	return err
}

// SaveLifecycles stores the given records in one transaction, overwriting
// any previously stored row for the same block. Re-inspecting a block is a
// replace, not a duplicate.
func (s *Storage) SaveLifecycles(ctx context.Context, lifecycles []analysis.BlockLifecycle) error {
	if len(lifecycles) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO block_lifecycles
		(block_number, block_hash, timestamp, proposer, builder, gas_utilization, tx_count, estimated_mev_eth, is_pbs_block, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(block_number) DO UPDATE SET
			block_hash = excluded.block_hash,
			timestamp = excluded.timestamp,
			proposer = excluded.proposer,
			builder = excluded.builder,
			gas_utilization = excluded.gas_utilization,
			tx_count = excluded.tx_count,
			estimated_mev_eth = excluded.estimated_mev_eth,
			is_pbs_block = excluded.is_pbs_block,
			record = excluded.record`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, lc := range lifecycles {
		record, err := json.Marshal(lc)
		if err != nil {
			_ = tx.Rollback()
			return err
		}

		var builder any
		if lc.Builder != nil {
			builder = *lc.Builder
		}

		isPbs := 0
		if lc.PBS.IsPbsBlock {
			isPbs = 1
		}

		if _, err := stmt.ExecContext(ctx,
			lc.BlockNumber,
			lc.BlockHash,
			lc.Timestamp,
			lc.Proposer,
			builder,
			lc.Gas.Utilization,
			lc.Transactions.TotalCount,
			lc.MEV.EstimatedMevEth,
			isPbs,
			string(record),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// SaveLifecycle stores a single record.
func (s *Storage) SaveLifecycle(ctx context.Context, lc analysis.BlockLifecycle) error {
	return s.SaveLifecycles(ctx, []analysis.BlockLifecycle{lc})
}

// LoadLifecycle retrieves the stored record for the given block height.
// Returns sql.ErrNoRows when the block has not been stored.
func (s *Storage) LoadLifecycle(ctx context.Context, blockNumber uint64) (analysis.BlockLifecycle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record FROM block_lifecycles WHERE block_number = ?`, blockNumber)

	var record string
	if err := row.Scan(&record); err != nil {
		return analysis.BlockLifecycle{}, err
	}

	var lc analysis.BlockLifecycle
	if err := json.Unmarshal([]byte(record), &lc); err != nil {
		return analysis.BlockLifecycle{}, err
	}
	return lc, nil
}
