package enums

// OrderEventType names the post-commit events emitted by the order lifecycle.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
	OrderEventShipped       OrderEventType = "order.shipped"
	OrderEventCancelled     OrderEventType = "order.cancelled"
)

// String implements fmt.Stringer.
func (e OrderEventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known OrderEventType.
func (e OrderEventType) IsValid() bool {
	switch e {
	case OrderEventCreated, OrderEventStatusChanged, OrderEventShipped, OrderEventCancelled:
		return true
	}
	return false
}
