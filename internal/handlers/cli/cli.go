// Package cli exposes the block inspection pipeline as a command-line
// application with one command per inspection mode.
package cli

import (
	"context"
	"os"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/inspector"

	"github.com/urfave/cli/v3"
)

// LifecycleStore persists assembled lifecycle records. It is satisfied by
// the sqlite storage and injected through a StoreOpener so commands only
// construct a store when the user asks for one.
type LifecycleStore interface {
	SaveLifecycles(ctx context.Context, lifecycles []analysis.BlockLifecycle) error
	Close() error
}

// StoreOpener opens a LifecycleStore at the given path.
type StoreOpener func(path string) (LifecycleStore, error)

// Run initializes and executes the blockscope CLI application.
//
// It registers all available commands:
//
//   - `block`: Analyzes a single block by height or the latest block.
//   - `range`: Analyzes a contiguous range of blocks.
//   - `live`:  Monitors new blocks as they are produced.
//   - `mev`:   Scans recent blocks for MEV activity.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - svc: The inspector service implementation backing every command.
//   - openStore: Factory for the optional lifecycle database sink.
func Run(ctx context.Context, svc inspector.Service, openStore StoreOpener) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "blockscope",
		Description:           "Command-line interface for inspecting Ethereum block production, gas markets, transaction ordering, and MEV activity.",
		Usage:                 "blockscope [command] [flags]",
		Commands: []*cli.Command{
			inspectBlockCommand(svc, openStore),
			inspectRangeCommand(svc, openStore),
			monitorCommand(svc, openStore),
			scanMEVCommand(svc),
		},
	}

	return app.Run(ctx, os.Args)
}
