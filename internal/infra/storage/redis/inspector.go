package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/blockscope/blockscope/internal/inspector"

	"github.com/redis/go-redis/v9"
)

// monitorCheckpointKey stores the height of the last block the live monitor
// fully processed. A single key is enough: the monitor tracks one chain.
const monitorCheckpointKey = "blockscope:monitor:checkpoint"

// SaveCheckpoint persists the most recent block height processed by the
// live monitor, overwriting any previous value. The key has no expiration.
func (c *client) SaveCheckpoint(ctx context.Context, height uint64) error {
	return c.conn.Set(ctx, monitorCheckpointKey, strconv.FormatUint(height, 10), 0).Err()
}

// LoadLatestCheckpoint retrieves the saved monitor height, or
// inspector.ErrNoCheckpointFound when nothing has been saved yet.
func (c *client) LoadLatestCheckpoint(ctx context.Context) (uint64, error) {
	val, err := c.conn.Get(ctx, monitorCheckpointKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = inspector.ErrNoCheckpointFound
		}

		return 0, err
	}

	return strconv.ParseUint(val, 10, 64)
}

// Compile-time assertion to ensure client implements the CheckpointStorage interface.
var _ inspector.CheckpointStorage = new(client)
