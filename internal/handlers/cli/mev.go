package cli

import (
	"context"
	"fmt"

	"github.com/blockscope/blockscope/internal/inspector"

	"github.com/urfave/cli/v3"
)

// scanMEVCommand returns a CLI command that analyzes recent blocks for MEV
// activity and prints an aggregate report.
//
// Usage example:
//
//	blockscope mev --blocks 100 --threshold 0.1
func scanMEVCommand(svc inspector.Service) *cli.Command {
	return &cli.Command{
		Name:        "mev",
		Description: "Scan recent blocks for MEV activity: recognized bot addresses, estimated extraction, and builder attribution.",
		Usage:       "Analyzes the most recent blocks and reports the ones above the profit threshold.",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:    "blocks",
				Aliases: []string{"b"},
				Usage:   "Number of recent blocks to analyze",
				Value:   100,
			},
			&cli.Float64Flag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   "Minimum estimated profit in ETH for a block to be reported",
				Value:   0.1,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			report, err := svc.ScanMEV(ctx, c.Uint64("blocks"), c.Float64("threshold"))
			if err != nil {
				return err
			}

			printMEVReport(report)
			return nil
		},
	}
}

func printMEVReport(report inspector.MEVScanReport) {
	fmt.Printf("\nMEV SCAN: blocks %d-%d (%d analyzed, threshold %.4f ETH)\n",
		report.FromHeight, report.ToHeight, report.BlocksScanned, report.ThresholdEth)
	fmt.Printf("PBS blocks: %d\n", report.PbsBlocks)
	fmt.Printf("Total estimated MEV: %.4f ETH\n", report.TotalEstimatedMevEth)

	if len(report.Findings) == 0 {
		fmt.Println("No blocks above the threshold.")
		return
	}

	for _, finding := range report.Findings {
		fmt.Printf("\nBlock %d: %.4f ETH estimated\n", finding.BlockNumber, finding.EstimatedMevEth)
		if finding.Builder != nil {
			fmt.Printf("  Builder: %s\n", *finding.Builder)
		}
		for _, address := range finding.BotAddresses {
			fmt.Printf("  Bot: %s\n", address)
		}
	}
}
