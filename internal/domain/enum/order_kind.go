package enum

// OrderSource identifies the surface that submitted the order.
type OrderSource string

const (
	OrderSourcePOS            OrderSource = "POS"
	OrderSourceKiosk          OrderSource = "KIOSK"
	OrderSourceDeliveryManual OrderSource = "DELIVERY_MANUAL"
)

// Valid reports whether s is a known order source.
func (s OrderSource) Valid() bool {
	switch s {
	case OrderSourcePOS, OrderSourceKiosk, OrderSourceDeliveryManual:
		return true
	}
	return false
}

// OrderType is the fulfillment mode of an order.
type OrderType string

const (
	OrderTypeDineIn           OrderType = "DINEIN"
	OrderTypeTakeout          OrderType = "TAKEOUT"
	OrderTypeDeliveryPlatform OrderType = "DELIVERY_PLATFORM"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeDeliveryPlatform:
		return true
	}
	return false
}
