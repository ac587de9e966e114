// Package registry provides the immutable lookup tables the analysis
// pipeline consumes: known extractive-actor addresses and known
// block-builder name fragments. The tables are fixed at construction time;
// there is no global mutable state, so a single registry can back
// concurrent analyses.
package registry

import (
	"strings"

	"github.com/blockscope/blockscope/internal/analysis"
	"github.com/blockscope/blockscope/internal/pkg/types"
)

// defaultActorAddresses is a partial list of addresses publicly attributed
// to MEV extraction bots. Best-effort: absence from this list proves
// nothing.
var defaultActorAddresses = []string{
	"0x0000000000007f150bd6f54c40a34d7c3d5e9f56",
	"0xa57bd00134b2850b2a1c55860c9e9ea100fdd6cf",
	"0x00000000003b3cc22af3ae1eac0440bcee416b40",
}

// defaultBuilderFragments are lowercase substrings that well-known block
// builders embed in the extra-data field of blocks they produce.
var defaultBuilderFragments = []string{
	"flashbots",
	"builder0x69",
	"rsync",
	"beaverbuild",
}

// Static is an in-memory registry backed by fixed tables. It implements
// analysis.Registry.
type Static struct {
	actors    types.Set[string]
	fragments []string
}

var _ analysis.Registry = (*Static)(nil)

// Option customizes the tables a Static registry is built with.
type Option func(*Static)

// WithActorAddresses replaces the default known-actor table. Addresses are
// matched case-insensitively.
func WithActorAddresses(addresses ...string) Option {
	return func(s *Static) {
		s.actors = types.NewSet[string]()
		for _, addr := range addresses {
			s.actors.Add(strings.ToLower(addr))
		}
	}
}

// WithBuilderFragments replaces the default builder-signature table.
// Fragments are matched case-insensitively against decoded extra-data.
func WithBuilderFragments(fragments ...string) Option {
	return func(s *Static) {
		s.fragments = make([]string, 0, len(fragments))
		for _, fragment := range fragments {
			s.fragments = append(s.fragments, strings.ToLower(fragment))
		}
	}
}

// New returns a registry seeded with the default actor and builder tables,
// optionally overridden through options.
func New(opts ...Option) *Static {
	s := &Static{}
	WithActorAddresses(defaultActorAddresses...)(s)
	WithBuilderFragments(defaultBuilderFragments...)(s)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IsKnownExtractiveActor reports whether address belongs to the known-actor
// table. Matching ignores case.
func (s *Static) IsKnownExtractiveActor(address string) bool {
	return s.actors.Contains(strings.ToLower(address))
}

// IsKnownBuilderSignature reports whether the decoded extra-data string
// contains any known builder fragment. Matching ignores case.
func (s *Static) IsKnownBuilderSignature(extraData string) bool {
	lowered := strings.ToLower(extraData)
	for _, fragment := range s.fragments {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}

	return false
}
