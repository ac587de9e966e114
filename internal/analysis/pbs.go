package analysis

import "strings"

// AnalyzePBS inspects a block's free-form extra-data field for known
// block-builder signatures.
//
// The bytes are decoded as text lossily: invalid sequences are replaced,
// never rejected. When a known builder fragment matches, the block is
// flagged as PBS-produced and the builder identity is set to the entire
// decoded string rather than just the matched fragment; the field is
// typically short and builder-attributable, so the simplification holds.
// Builder payment would require decoding the block's final coinbase
// transfer and is always absent.
func AnalyzePBS(block Block, registry BuilderRegistry) PbsMetrics {
	extraData := strings.ToValidUTF8(string(block.ExtraData), "�")

	metrics := PbsMetrics{ExtraData: extraData}
	if registry.IsKnownBuilderSignature(extraData) {
		metrics.IsPbsBlock = true
		metrics.BuilderAddress = &extraData
	}

	return metrics
}
