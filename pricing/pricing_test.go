package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	totals := Compute(100)
	assert.InDelta(t, 100.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 10.0, totals.Tax, 1e-9)
	assert.InDelta(t, 0.0, totals.Shipping, 1e-9)
	assert.InDelta(t, 110.0, totals.Total, 1e-9)
}

func TestComputeZeroSubtotal(t *testing.T) {
	totals := Compute(0)
	assert.InDelta(t, 0.0, totals.Total, 1e-9)
}
