package analysis

import "github.com/holiman/uint256"

// CalculateGasMetrics derives the gas-market metrics of a single block from
// its header fields and transaction list.
//
// The average priority fee divides the summed integer wei amount by the
// count of declaring transactions before converting to gwei, matching the
// reference rounding behavior (which differs from averaging converted
// floats). Utilization is not clamped above 100%: inconsistent upstream
// data passes through rather than erroring. A zero gas limit yields 0%
// utilization instead of a non-numeric result.
func CalculateGasMetrics(block Block) GasMetrics {
	var utilization float64
	if block.GasLimit > 0 {
		utilization = float64(block.GasUsed) / float64(block.GasLimit) * 100
	}

	var (
		totalPriorityFee = uint256.NewInt(0)
		priorityFeeCount uint64
	)
	for _, tx := range block.Transactions {
		if tx.MaxPriorityFeePerGas != nil {
			totalPriorityFee.Add(totalPriorityFee, tx.MaxPriorityFeePerGas)
			priorityFeeCount++
		}
	}

	var avgPriorityFeeGwei float64
	if priorityFeeCount > 0 {
		avg := new(uint256.Int).Div(totalPriorityFee, uint256.NewInt(priorityFeeCount))
		avgPriorityFeeGwei = WeiToGwei(avg)
	}

	var feesBurnedEth float64
	if block.BaseFeePerGas != nil {
		burned := new(uint256.Int).Mul(block.BaseFeePerGas, uint256.NewInt(block.GasUsed))
		feesBurnedEth = WeiToEther(burned)
	}

	return GasMetrics{
		GasUsed:            block.GasUsed,
		GasLimit:           block.GasLimit,
		Utilization:        utilization,
		BaseFeeGwei:        WeiToGwei(block.BaseFeePerGas),
		AvgPriorityFeeGwei: avgPriorityFeeGwei,
		FeesBurnedEth:      feesBurnedEth,
		PriorityFeesEth:    WeiToEther(totalPriorityFee),
	}
}
