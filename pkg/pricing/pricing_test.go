package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	t.Run("extracts VAT from a VAT-inclusive total", func(t *testing.T) {
		// 112.00 at 12%: net 100.00, VAT 12.00
		b := Compute([]Line{{UnitPrice: 11200, Quantity: 1}}, 0, 0.12)

		assert.Equal(t, int64(11200), b.Subtotal)
		assert.Equal(t, int64(11200), b.GrossTotal)
		assert.Equal(t, int64(10000), b.Net)
		assert.Equal(t, int64(1200), b.VAT)
	})

	t.Run("net plus VAT always equals gross", func(t *testing.T) {
		for gross := int64(1); gross < 5000; gross += 7 {
			b := Compute([]Line{{UnitPrice: gross, Quantity: 1}}, 0, 0.12)
			assert.Equal(t, b.GrossTotal, b.Net+b.VAT, "gross %d", gross)
		}
	})

	t.Run("sums multiple lines exactly", func(t *testing.T) {
		b := Compute([]Line{
			{UnitPrice: 15500, Quantity: 2}, // 310.00
			{UnitPrice: 2500, Quantity: 3},  // 75.00
		}, 0, 0.12)

		assert.Equal(t, int64(38500), b.Subtotal)
		assert.Equal(t, int64(38500), b.GrossTotal)
	})

	t.Run("applies a discount before extracting VAT", func(t *testing.T) {
		// 280.00 minus 30.00 discount: gross 250.00
		b := Compute([]Line{{UnitPrice: 28000, Quantity: 1}}, 3000, 0.12)

		assert.Equal(t, int64(28000), b.Subtotal)
		assert.Equal(t, int64(3000), b.DiscountTotal)
		assert.Equal(t, int64(25000), b.GrossTotal)
		assert.Equal(t, b.GrossTotal, b.Net+b.VAT)
	})

	t.Run("clamps gross at zero when discount exceeds subtotal", func(t *testing.T) {
		b := Compute([]Line{{UnitPrice: 1000, Quantity: 1}}, 5000, 0.12)

		assert.Equal(t, int64(0), b.GrossTotal)
		assert.Equal(t, int64(0), b.VAT)
		assert.Equal(t, int64(0), b.Net)
	})

	t.Run("empty order totals zero", func(t *testing.T) {
		b := Compute(nil, 0, 0.12)

		assert.Equal(t, int64(0), b.Subtotal)
		assert.Equal(t, int64(0), b.GrossTotal)
	})
}

func TestExtractVAT(t *testing.T) {
	t.Run("rounds half away from zero", func(t *testing.T) {
		// 1.00 at 12%: net 0.892857... rounds to 0.89
		net, vat := ExtractVAT(100, 0.12)
		assert.Equal(t, int64(89), net)
		assert.Equal(t, int64(11), vat)

		// 150 / 1.12 = 133.928... rounds to 134
		net, vat = ExtractVAT(150, 0.12)
		assert.Equal(t, int64(134), net)
		assert.Equal(t, int64(16), vat)
	})

	t.Run("zero rate means no VAT", func(t *testing.T) {
		net, vat := ExtractVAT(12345, 0)
		assert.Equal(t, int64(12345), net)
		assert.Equal(t, int64(0), vat)
	})
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(15550), ToCents(155.50))
	assert.Equal(t, int64(10), ToCents(0.1))
	assert.Equal(t, int64(3), ToCents(0.025))
	assert.Equal(t, int64(-100), ToCents(-1.00))
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, 155.50, FromCents(15550))
	assert.Equal(t, 0.01, FromCents(1))
}
