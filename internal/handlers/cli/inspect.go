package cli

import (
	"context"
	"fmt"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/export"
	"github.com/blockscope/blockscope/internal/inspector"

	"github.com/urfave/cli/v3"
)

// inspectBlockCommand returns a CLI command that analyzes a single block.
//
// Usage example:
//
//	blockscope block --number 19000000
//	blockscope block --number latest
func inspectBlockCommand(svc inspector.Service, openStore StoreOpener) *cli.Command {
	return &cli.Command{
		Name:        "block",
		Description: "Analyze a single block's timing, gas market, transaction ordering, MEV indicators, and builder attribution.",
		Usage:       "Analyzes one block identified by height or the 'latest' tag.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "number",
				Aliases: []string{"n"},
				Usage:   "Block number (decimal or 0x-prefixed hex) or 'latest'",
				Value:   "latest",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to a SQLite database to store the lifecycle record in",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ref, err := inspector.BlockRefFromString(c.String("number"))
			if err != nil {
				return err
			}

			lifecycle, err := svc.InspectBlock(ctx, ref)
			if err != nil {
				return err
			}

			fmt.Print(export.Render(lifecycle))

			return persistLifecycles(ctx, openStore, "", c.String("db"), []analysis.BlockLifecycle{lifecycle})
		},
	}
}

// inspectRangeCommand returns a CLI command that analyzes every block in a
// contiguous height range.
//
// Usage example:
//
//	blockscope range --start 19000000 --end 19000010 -o blocks.csv
func inspectRangeCommand(svc inspector.Service, openStore StoreOpener) *cli.Command {
	return &cli.Command{
		Name:        "range",
		Description: "Analyze a contiguous range of blocks and optionally export the results.",
		Usage:       "Analyzes blocks from --start through --end inclusive.",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "start",
				Aliases:  []string{"s"},
				Usage:    "First block height of the range",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "end",
				Aliases:  []string{"e"},
				Usage:    "Last block height of the range (inclusive)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path to export the results as CSV",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to a SQLite database to store the lifecycle records in",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			lifecycles, err := svc.InspectRange(ctx, c.Uint64("start"), c.Uint64("end"))
			if err != nil {
				return err
			}

			for _, lifecycle := range lifecycles {
				fmt.Print(export.Render(lifecycle))
			}

			return persistLifecycles(ctx, openStore, c.String("output"), c.String("db"), lifecycles)
		},
	}
}
