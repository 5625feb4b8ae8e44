package enum

// MovementType classifies a stock movement. The movement log is append-only;
// corrections are new offsetting rows, never edits.
type MovementType string

const (
	MovementReceive MovementType = "RECEIVE"
	MovementConsume MovementType = "CONSUME"
	MovementWastage MovementType = "WASTAGE"
	MovementAdjust  MovementType = "ADJUST"
	MovementCount   MovementType = "COUNT"
)

// StockUnit is the unit of measure of a stock item or movement.
type StockUnit string

const (
	UnitMilliliter StockUnit = "ML"
	UnitGram       StockUnit = "G"
	UnitPiece      StockUnit = "PCS"
)

// Valid reports whether u is a known unit of measure.
func (u StockUnit) Valid() bool {
	switch u {
	case UnitMilliliter, UnitGram, UnitPiece:
		return true
	}
	return false
}

// MovementReference names the entity a movement originated from.
type MovementReference string

const (
	RefOrder         MovementReference = "ORDER"
	RefPurchaseOrder MovementReference = "PO"
	RefCount         MovementReference = "COUNT"
)
