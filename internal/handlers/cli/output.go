package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/export"
)

// writeCSVFile exports the given lifecycles to a CSV file at path.
func writeCSVFile(path string, lifecycles []analysis.BlockLifecycle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := export.WriteCSV(f, lifecycles); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}

// persistLifecycles applies the shared output sinks: a CSV file when
// outputPath is set and the lifecycle database when dbPath is set. Either
// may be empty.
func persistLifecycles(ctx context.Context, openStore StoreOpener, outputPath, dbPath string, lifecycles []analysis.BlockLifecycle) error {
	if outputPath != "" {
		if err := writeCSVFile(outputPath, lifecycles); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d blocks to %s\n", len(lifecycles), outputPath)
	}

	if dbPath != "" {
		store, err := openStore(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open lifecycle database: %w", err)
		}
		defer store.Close()

		if err := store.SaveLifecycles(ctx, lifecycles); err != nil {
			return fmt.Errorf("failed to store lifecycles: %w", err)
		}
	}

	return nil
}
