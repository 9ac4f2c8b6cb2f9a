package enums

import (
	"fmt"
	"math"
)

// OrderStatus tracks the lifecycle of a storefront order.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusDesignConfirmed OrderStatus = "design_confirmed"
	OrderStatusPreparing       OrderStatus = "preparing"
	OrderStatusInProduction    OrderStatus = "in_production"
	OrderStatusShipped         OrderStatus = "shipped"
	OrderStatusDelivered       OrderStatus = "delivered"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusDesignConfirmed,
	OrderStatusPreparing,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// orderProgression is the forward path used for progress reporting; cancelled sits outside it.
var orderProgression = []OrderStatus{
	OrderStatusPending,
	OrderStatusDesignConfirmed,
	OrderStatusPreparing,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusDelivered,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:         "주문 접수",
	OrderStatusDesignConfirmed: "디자인 확정",
	OrderStatusPreparing:       "제작 준비",
	OrderStatusInProduction:    "제작 진행",
	OrderStatusShipped:         "배송 중",
	OrderStatusDelivered:       "배송 완료",
	OrderStatusCancelled:       "주문 취소",
}

// OrderStatuses returns every known status in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further fulfilment is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Label returns the customer-facing display label.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Progress returns the completion percentage along the forward path.
// Cancelled and unknown statuses report 0.
func (s OrderStatus) Progress() int {
	if s == OrderStatusCancelled {
		return 0
	}
	for idx, candidate := range orderProgression {
		if candidate == s {
			return int(math.Round(float64(idx) / float64(len(orderProgression)-1) * 100))
		}
	}
	return 0
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
