// Package inspector coordinates the block analysis pipeline: it fetches
// blocks from a Blockchain implementation, runs them through the analysis
// assembler, and exposes one entrypoint per inspection mode (single block,
// height range, live monitoring, and MEV scanning).
package inspector

import (
	"context"
	"errors"
	"time"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/pkg/logger"
	"github.com/blockscope/blockscope/internal/pkg/resilience/retry"
	"github.com/blockscope/blockscope/internal/pkg/x/chflow"
)

// defaultPollInterval is how long the live monitor waits between polls for
// new blocks when no interval is configured.
const defaultPollInterval = 3 * time.Second

// monitorEventBuffer sizes the live monitor's event channel so slow
// consumers do not immediately stall the polling loop.
const monitorEventBuffer = 16

// ErrInvalidRange is returned by InspectRange when start is greater than end.
var ErrInvalidRange = errors.New("range start is greater than end")

// MonitorEvent is what the live monitor emits for each polled block: either
// a fully assembled lifecycle record or the error that prevented one.
type MonitorEvent struct {
	Lifecycle analysis.BlockLifecycle
	Err       error
}

// MEVFinding is a single block whose MEV activity cleared the scan
// threshold.
type MEVFinding struct {
	BlockNumber     uint64
	EstimatedMevEth float64
	BotAddresses    []string
	Builder         *string
}

// MEVScanReport aggregates a ScanMEV run over a window of recent blocks.
type MEVScanReport struct {
	FromHeight           uint64
	ToHeight             uint64
	BlocksScanned        int
	ThresholdEth         float64
	PbsBlocks            int
	TotalEstimatedMevEth float64
	Findings             []MEVFinding
}

// Service is the inspector's public surface. Every operation produces
// immutable lifecycle records; nothing here mutates chain state.
type Service interface {
	// InspectBlock analyzes the single block identified by ref.
	InspectBlock(ctx context.Context, ref BlockRef) (analysis.BlockLifecycle, error)

	// InspectRange analyzes every block in [start, end], skipping heights
	// the node does not know, and returns the lifecycles in height order.
	// Returns ErrInvalidRange when start > end.
	InspectRange(ctx context.Context, start, end uint64) ([]analysis.BlockLifecycle, error)

	// Monitor polls for new blocks and emits a MonitorEvent per block on
	// the returned channel. With count > 0 it stops after that many
	// blocks; with count == 0 it runs until ctx is canceled. The channel
	// is closed when the monitor stops. When a CheckpointStorage is
	// configured, the monitor resumes after the last saved height and
	// saves a new checkpoint after each processed block.
	Monitor(ctx context.Context, count uint64) (<-chan MonitorEvent, error)

	// ScanMEV analyzes the lookback most recent blocks and reports the
	// ones whose estimated MEV activity reaches thresholdEth.
	ScanMEV(ctx context.Context, lookback uint64, thresholdEth float64) (MEVScanReport, error)
}

type service struct {
	blockchain Blockchain
	assembler  *analysis.Assembler

	retrier           retry.Retry
	checkpointStorage CheckpointStorage
	pollInterval      time.Duration
}

var _ Service = (*service)(nil)

type config struct {
	retrier           retry.Retry
	checkpointStorage CheckpointStorage
	pollInterval      time.Duration
}

// Option configures optional inspector behavior.
type Option func(*config)

// WithRetry replaces the default fetch retry policy.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retrier = r
	}
}

// WithCheckpointStorage enables monitor resume by persisting the last
// processed height.
func WithCheckpointStorage(cs CheckpointStorage) Option {
	return func(c *config) {
		c.checkpointStorage = cs
	}
}

// WithPollInterval sets how often the live monitor polls for new blocks.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// New creates an inspector service reading from b and resolving MEV actors
// and builder signatures through registry.
func New(b Blockchain, registry analysis.Registry, opts ...Option) *service {
	cfg := config{
		retrier:           retry.New(),
		checkpointStorage: nopCheckpoint{},
		pollInterval:      defaultPollInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		blockchain:        b,
		assembler:         analysis.NewAssembler(registry),
		retrier:           cfg.retrier,
		checkpointStorage: cfg.checkpointStorage,
		pollInterval:      cfg.pollInterval,
	}
}

// fetchBlockByHeight retrieves one block with the configured retry policy.
// ErrBlockNotFound is terminal: retrying cannot make a missing block appear.
func (s *service) fetchBlockByHeight(ctx context.Context, height uint64) (analysis.Block, error) {
	var block analysis.Block
	err := s.retrier.Execute(ctx, func() error {
		var err error
		block, err = s.blockchain.FetchBlockByHeight(ctx, height)
		if errors.Is(err, ErrBlockNotFound) {
			return retry.Unrecoverable(err)
		}
		return err
	})
	return block, err
}

func (s *service) fetchLatestBlock(ctx context.Context) (analysis.Block, error) {
	var block analysis.Block
	err := s.retrier.Execute(ctx, func() error {
		var err error
		block, err = s.blockchain.FetchLatestBlock(ctx)
		return err
	})
	return block, err
}

func (s *service) fetchLatestHeight(ctx context.Context) (uint64, error) {
	var height uint64
	err := s.retrier.Execute(ctx, func() error {
		var err error
		height, err = s.blockchain.FetchLatestHeight(ctx)
		return err
	})
	return height, err
}

// predecessorTimestamp fetches the timestamp of the block before height.
// A missing predecessor only degrades the block-time metric, so failures
// are logged and reported as absent rather than propagated.
func (s *service) predecessorTimestamp(ctx context.Context, height uint64) *uint64 {
	if height == 0 {
		return nil
	}

	prev, err := s.fetchBlockByHeight(ctx, height-1)
	if err != nil {
		logger.Warn(ctx, "failed to fetch predecessor block, block time unavailable",
			"block.height", height,
			"error", err,
		)
		return nil
	}

	return &prev.Timestamp
}

func (s *service) InspectBlock(ctx context.Context, ref BlockRef) (analysis.BlockLifecycle, error) {
	var (
		block analysis.Block
		err   error
	)
	if ref.Latest {
		block, err = s.fetchLatestBlock(ctx)
	} else {
		block, err = s.fetchBlockByHeight(ctx, ref.Height)
	}
	if err != nil {
		return analysis.BlockLifecycle{}, err
	}

	return s.assembler.Assemble(block, s.predecessorTimestamp(ctx, block.Height)), nil
}

func (s *service) InspectRange(ctx context.Context, start, end uint64) ([]analysis.BlockLifecycle, error) {
	if start > end {
		return nil, ErrInvalidRange
	}

	lifecycles := make([]analysis.BlockLifecycle, 0, end-start+1)

	prevTimestamp := s.predecessorTimestamp(ctx, start)
	for height := start; height <= end; height++ {
		block, err := s.fetchBlockByHeight(ctx, height)
		if errors.Is(err, ErrBlockNotFound) {
			logger.Warn(ctx, "block not found, skipping", "block.height", height)
			prevTimestamp = nil
			continue
		}
		if err != nil {
			return nil, err
		}

		lifecycles = append(lifecycles, s.assembler.Assemble(block, prevTimestamp))
		ts := block.Timestamp
		prevTimestamp = &ts
	}

	return lifecycles, nil
}

// monitorStartHeight resolves where the live monitor begins: one past the
// saved checkpoint when there is one, otherwise the current chain tip.
func (s *service) monitorStartHeight(ctx context.Context) (uint64, error) {
	checkpoint, err := s.checkpointStorage.LoadLatestCheckpoint(ctx)
	switch {
	case err == nil:
		logger.Info(ctx, "resuming monitor from checkpoint", "checkpoint.height", checkpoint)
		return checkpoint + 1, nil
	case errors.Is(err, ErrNoCheckpointFound):
		return s.fetchLatestHeight(ctx)
	default:
		return 0, err
	}
}

func (s *service) Monitor(ctx context.Context, count uint64) (<-chan MonitorEvent, error) {
	next, err := s.monitorStartHeight(ctx)
	if err != nil {
		return nil, err
	}

	eventsCh := make(chan MonitorEvent, monitorEventBuffer)
	go s.monitorLoop(ctx, next, count, eventsCh)

	return eventsCh, nil
}

// monitorLoop is the live monitor's polling goroutine. It owns eventsCh and
// closes it on exit.
func (s *service) monitorLoop(ctx context.Context, next, count uint64, eventsCh chan<- MonitorEvent) {
	defer close(eventsCh)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	var (
		emitted       uint64
		prevTimestamp *uint64
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		latest, err := s.fetchLatestHeight(ctx)
		if err != nil {
			if !chflow.Send(ctx, eventsCh, MonitorEvent{Err: err}) {
				return
			}
			continue
		}

		for next <= latest {
			block, err := s.fetchBlockByHeight(ctx, next)
			if errors.Is(err, ErrBlockNotFound) {
				// The node's tip report ran ahead of its block index.
				// Leave next untouched and retry on the following tick.
				break
			}
			if err != nil {
				if !chflow.Send(ctx, eventsCh, MonitorEvent{Err: err}) {
					return
				}
				break
			}

			if prevTimestamp == nil {
				prevTimestamp = s.predecessorTimestamp(ctx, block.Height)
			}

			event := MonitorEvent{Lifecycle: s.assembler.Assemble(block, prevTimestamp)}
			if !chflow.Send(ctx, eventsCh, event) {
				return
			}

			if err := s.checkpointStorage.SaveCheckpoint(ctx, block.Height); err != nil {
				logger.Error(ctx, "failed to save monitor checkpoint",
					"block.height", block.Height,
					"error", err,
				)
			}

			ts := block.Timestamp
			prevTimestamp = &ts
			next = block.Height + 1

			emitted++
			if count > 0 && emitted >= count {
				return
			}
		}
	}
}

func (s *service) ScanMEV(ctx context.Context, lookback uint64, thresholdEth float64) (MEVScanReport, error) {
	latest, err := s.fetchLatestHeight(ctx)
	if err != nil {
		return MEVScanReport{}, err
	}

	if lookback == 0 {
		lookback = 1
	}

	from := uint64(0)
	if latest >= lookback-1 {
		from = latest - lookback + 1
	}

	lifecycles, err := s.InspectRange(ctx, from, latest)
	if err != nil {
		return MEVScanReport{}, err
	}

	report := MEVScanReport{
		FromHeight:    from,
		ToHeight:      latest,
		BlocksScanned: len(lifecycles),
		ThresholdEth:  thresholdEth,
		Findings:      make([]MEVFinding, 0),
	}
	for _, lc := range lifecycles {
		report.TotalEstimatedMevEth += lc.MEV.EstimatedMevEth
		if lc.PBS.IsPbsBlock {
			report.PbsBlocks++
		}

		active := lc.MEV.EstimatedMevEth > 0 || len(lc.MEV.MevBotAddresses) > 0
		if active && lc.MEV.EstimatedMevEth >= thresholdEth {
			report.Findings = append(report.Findings, MEVFinding{
				BlockNumber:     lc.BlockNumber,
				EstimatedMevEth: lc.MEV.EstimatedMevEth,
				BotAddresses:    lc.MEV.MevBotAddresses,
				Builder:         lc.Builder,
			})
		}
	}

	return report, nil
}
