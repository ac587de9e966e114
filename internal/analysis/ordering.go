package analysis

// AnalyzeTransactions classifies a block's transactions by protocol type
// and evaluates their ordering. Transactions with an unrecognized type
// discriminant fall into the legacy bucket, a deliberate default rather
// than an error, which keeps the per-type counts summing to the total.
func AnalyzeTransactions(transactions []Transaction) TransactionMetrics {
	var breakdown TypeBreakdown
	for _, tx := range transactions {
		switch tx.Type {
		case TxTypeAccessList:
			breakdown.EIP2930++
		case TxTypeFeeMarket:
			breakdown.EIP1559++
		case TxTypeBlob:
			breakdown.EIP4844Blob++
		default:
			breakdown.Legacy++
		}
	}

	return TransactionMetrics{
		TotalCount:    len(transactions),
		TypeBreakdown: breakdown,
		Ordering:      analyzeOrdering(transactions),
		FailedCount:   0, // requires receipts
	}
}

// analyzeOrdering walks adjacent transaction pairs and flags an anomaly
// whenever a later transaction declares a strictly greater priority fee
// than its predecessor. Blocks with at most one transaction, or where
// priority fees are absent, count as sorted by default.
func analyzeOrdering(transactions []Transaction) OrderingMetrics {
	metrics := OrderingMetrics{SortedByPriority: true}

	for i := 1; i < len(transactions); i++ {
		prev, curr := transactions[i-1].MaxPriorityFeePerGas, transactions[i].MaxPriorityFeePerGas
		if prev == nil || curr == nil {
			continue
		}

		if curr.Gt(prev) {
			metrics.SortedByPriority = false
			metrics.Anomalies++
		}
	}

	return metrics
}
