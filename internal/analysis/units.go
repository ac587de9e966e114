package analysis

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Scale factors between wei, the smallest on-chain unit, and the two
// display units used throughout the lifecycle record.
var (
	weiPerEther = new(big.Float).SetFloat64(1e18)
	weiPerGwei  = new(big.Float).SetFloat64(1e9)
)

// weiToUnit divides wei by the given scale factor and returns the quotient
// as a float64. A nil amount converts to 0.0: display values are
// non-critical, so malformed upstream data degrades instead of erroring.
func weiToUnit(wei *uint256.Int, scale *big.Float) float64 {
	if wei == nil {
		return 0
	}

	quo := new(big.Float).Quo(new(big.Float).SetInt(wei.ToBig()), scale)
	out, _ := quo.Float64()
	return out
}

// WeiToEther converts a wei amount to ether. Nil converts to 0.0.
func WeiToEther(wei *uint256.Int) float64 {
	return weiToUnit(wei, weiPerEther)
}

// WeiToGwei converts a wei amount to gwei. Nil converts to 0.0.
func WeiToGwei(wei *uint256.Int) float64 {
	return weiToUnit(wei, weiPerGwei)
}
