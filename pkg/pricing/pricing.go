package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is the VAT-inclusive rate applied when none is configured.
const DefaultVATRate = 0.12

// Line is one order line as seen by the calculator: the effective unit price
// (base price plus the sum of selected option deltas) in minor units, and the
// quantity ordered.
type Line struct {
	UnitPrice int64
	Quantity  int
}

// Breakdown is the VAT-inclusive pricing result, all amounts in minor units.
// VAT is extracted from the gross total, not added on top of it.
type Breakdown struct {
	Subtotal      int64
	DiscountTotal int64
	GrossTotal    int64
	VAT           int64
	Net           int64
}

// Compute derives the settlement breakdown for a set of lines. Subtotal is
// the exact integer sum of price times quantity; gross never goes below zero;
// net = gross / (1 + rate) and vat = gross - net, both rounded half away from
// zero to the minor unit.
func Compute(lines []Line, discountTotal int64, vatRate float64) Breakdown {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}

	gross := subtotal - discountTotal
	if gross < 0 {
		gross = 0
	}

	net, vat := ExtractVAT(gross, vatRate)

	return Breakdown{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		GrossTotal:    gross,
		VAT:           vat,
		Net:           net,
	}
}

// ExtractVAT splits a VAT-inclusive gross amount into its net and VAT parts.
func ExtractVAT(gross int64, vatRate float64) (net, vat int64) {
	divisor := decimal.NewFromFloat(1).Add(decimal.NewFromFloat(vatRate))
	netDec := decimal.NewFromInt(gross).DivRound(divisor, 0)
	net = netDec.IntPart()
	vat = gross - net
	return net, vat
}

// ToCents converts a client-supplied major-unit amount to minor units,
// rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts minor units back to a major-unit amount for display.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
