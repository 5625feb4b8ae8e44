package enum

// OptionType groups product options on the menu.
type OptionType string

const (
	OptionTemperature OptionType = "TEMPERATURE"
	OptionBeans       OptionType = "BEANS"
	OptionMilk        OptionType = "MILK"
	OptionAddon       OptionType = "ADDON"
)

// Valid reports whether t is a known option type.
func (t OptionType) Valid() bool {
	switch t {
	case OptionTemperature, OptionBeans, OptionMilk, OptionAddon:
		return true
	}
	return false
}

// PurchaseOrderStatus tracks a purchase order from creation to receipt.
type PurchaseOrderStatus string

const (
	PurchaseOrderOpen     PurchaseOrderStatus = "OPEN"
	PurchaseOrderReceived PurchaseOrderStatus = "RECEIVED"
)

// CountStatus tracks an inventory count through its posting workflow.
type CountStatus string

const (
	CountDraft     CountStatus = "DRAFT"
	CountSubmitted CountStatus = "SUBMITTED"
	CountPosted    CountStatus = "POSTED"
)

// ShiftStatus marks whether a cashier shift is open or closed.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

// UserRole is the staff role carried in auth claims.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleCashier UserRole = "CASHIER"
	RoleKitchen UserRole = "KITCHEN"
)
