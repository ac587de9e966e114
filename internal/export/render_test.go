package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Run("renders every section", func(t *testing.T) {
		out := Render(sampleLifecycle(19_000_000))

		assert.Contains(t, out, "Block Number: 19000000")
		assert.Contains(t, out, "TIMING METRICS")
		assert.Contains(t, out, "GAS METRICS")
		assert.Contains(t, out, "Gas Used: 15000000 / 30000000 (50.0%)")
		assert.Contains(t, out, "TRANSACTIONS")
		assert.Contains(t, out, "Types: Legacy(1), EIP-2930(0), EIP-1559(3), EIP-4844(1)")
		assert.Contains(t, out, "MEV INDICATORS")
		assert.Contains(t, out, "Estimated MEV: 0.0000 ETH")
		assert.Contains(t, out, "PBS METRICS")
		assert.Contains(t, out, "PBS Block: Yes")
		assert.Contains(t, out, "Builder: beaverbuild.org")
	})

	t.Run("omits the builder line when attribution is absent", func(t *testing.T) {
		lc := sampleLifecycle(1)
		lc.PBS.IsPbsBlock = false
		lc.PBS.BuilderAddress = nil

		out := Render(lc)
		assert.Contains(t, out, "PBS Block: No")
		assert.NotContains(t, out, "Builder:")
	})
}
