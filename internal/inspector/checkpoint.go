package inspector

import (
	"context"
	"errors"
)

// ErrNoCheckpointFound is returned by LoadLatestCheckpoint when no
// checkpoint has been saved yet.
var ErrNoCheckpointFound = errors.New("no checkpoint found")

// CheckpointStorage persists the height of the last block the live monitor
// fully processed, so a restarted monitor resumes where it left off instead
// of at the chain tip.
type CheckpointStorage interface {
	// SaveCheckpoint records height as the latest processed block,
	// overwriting any previous checkpoint.
	SaveCheckpoint(ctx context.Context, height uint64) error

	// LoadLatestCheckpoint returns the most recently saved height, or
	// ErrNoCheckpointFound when nothing has been saved.
	LoadLatestCheckpoint(ctx context.Context) (uint64, error)
}

// nopCheckpoint is the default CheckpointStorage: nothing is persisted and
// every load reports no checkpoint, so the monitor always starts at the
// chain tip.
type nopCheckpoint struct{}

var _ CheckpointStorage = nopCheckpoint{}

func (nopCheckpoint) SaveCheckpoint(_ context.Context, _ uint64) error {
	return nil
}

func (nopCheckpoint) LoadLatestCheckpoint(_ context.Context) (uint64, error) {
	return 0, ErrNoCheckpointFound
}
