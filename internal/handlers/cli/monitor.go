package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/export"
	"github.com/blockscope/blockscope/internal/inspector"
	"github.com/blockscope/blockscope/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// monitorCommand returns a CLI command that follows the chain tip and
// analyzes each new block as it is produced.
//
// Usage example:
//
//	blockscope live --count 10 -o live.csv
//
// With --count 0 the monitor runs until it receives an interrupt (SIGINT or
// SIGTERM).
func monitorCommand(svc inspector.Service, openStore StoreOpener) *cli.Command {
	return &cli.Command{
		Name:        "live",
		Description: "Monitor new blocks live, analyzing each one as it is produced. Terminates gracefully on Ctrl+C or termination signals.",
		Usage:       "Follows the chain tip and prints a lifecycle report per block.",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "Number of blocks to monitor (0 = until interrupted)",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path to export the results as CSV, written incrementally",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to a SQLite database to store the lifecycle records in",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sink, err := newLiveSink(c.String("output"), c.String("db"), openStore)
			if err != nil {
				return err
			}
			defer sink.Close()

			eventsCh, err := svc.Monitor(ctx, c.Uint64("count"))
			if err != nil {
				return err
			}

			for event := range eventsCh {
				if event.Err != nil {
					logger.Error(ctx, "monitor event failed", "error", event.Err)
					continue
				}

				fmt.Print(export.Render(event.Lifecycle))

				if err := sink.Write(ctx, event.Lifecycle); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

// liveSink writes lifecycle records one at a time as the monitor emits
// them, so an interrupted session keeps everything processed so far.
type liveSink struct {
	file      *os.File
	csvWriter *csv.Writer
	store     LifecycleStore
}

func newLiveSink(outputPath, dbPath string, openStore StoreOpener) (*liveSink, error) {
	sink := new(liveSink)

	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}

		w := csv.NewWriter(f)
		if err := w.Write(export.Header); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()

		sink.file = f
		sink.csvWriter = w
	}

	if dbPath != "" {
		store, err := openStore(dbPath)
		if err != nil {
			sink.Close()
			return nil, fmt.Errorf("failed to open lifecycle database: %w", err)
		}
		sink.store = store
	}

	return sink, nil
}

func (s *liveSink) Write(ctx context.Context, lc analysis.BlockLifecycle) error {
	if s.csvWriter != nil {
		if err := s.csvWriter.Write(export.Row(lc)); err != nil {
			return err
		}
		s.csvWriter.Flush()
		if err := s.csvWriter.Error(); err != nil {
			return err
		}
	}

	if s.store != nil {
		if err := s.store.SaveLifecycles(ctx, []analysis.BlockLifecycle{lc}); err != nil {
			return err
		}
	}

	return nil
}

func (s *liveSink) Close() {
	if s.file != nil {
		_ = s.file.Close()
	}
	if s.store != nil {
		_ = s.store.Close()
	}
}
