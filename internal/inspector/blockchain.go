package inspector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/blockscope/blockscope/internal/analysis"
)

// ErrBlockNotFound is returned by FetchBlockByHeight when the node knows no
// block at the requested height, e.g. when polling ahead of the chain tip.
var ErrBlockNotFound = errors.New("block not found")

// Blockchain abstracts the node access the inspector needs. Implementations
// live under internal/infra/blockchain and talk JSON-RPC to a real node.
type Blockchain interface {
	// FetchLatestHeight returns the height of the most recent block the
	// node knows about.
	FetchLatestHeight(ctx context.Context) (uint64, error)

	// FetchBlockByHeight retrieves the full block at the given height,
	// including its transaction list. Returns ErrBlockNotFound when the
	// node has no block at that height.
	FetchBlockByHeight(ctx context.Context, height uint64) (analysis.Block, error)

	// FetchLatestBlock retrieves the most recent full block.
	FetchLatestBlock(ctx context.Context) (analysis.Block, error)
}

// BlockRef identifies a block either by explicit height or as "latest".
type BlockRef struct {
	Height uint64
	Latest bool
}

// BlockRefFromString parses a user-supplied block reference: the literal
// "latest" (case-insensitive), a decimal height, or a 0x-prefixed hex
// height.
func BlockRefFromString(s string) (BlockRef, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "latest") {
		return BlockRef{Latest: true}, nil
	}

	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		height, err := strconv.ParseUint(rest, 16, 64)
		if err != nil {
			return BlockRef{}, fmt.Errorf("invalid hex block reference %q: %w", s, err)
		}
		return BlockRef{Height: height}, nil
	}

	height, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return BlockRef{}, fmt.Errorf("invalid block reference %q: %w", s, err)
	}
	return BlockRef{Height: height}, nil
}
