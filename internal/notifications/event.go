package notifications

import (
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/google/uuid"
)

// EventVersion is bumped when OrderEvent changes incompatibly.
const EventVersion = 1

// OrderEvent is published after an order mutation commits.
type OrderEvent struct {
	Version          int                  `json:"version"`
	EventID          uuid.UUID            `json:"eventId"`
	Type             enums.OrderEventType `json:"type"`
	OccurredAt       time.Time            `json:"occurredAt"`
	TenantID         uuid.UUID            `json:"tenantId"`
	OrderID          uuid.UUID            `json:"orderId"`
	OrderNumber      string               `json:"orderNumber"`
	CustomerName     string               `json:"customerName"`
	OrganizationName *string              `json:"organizationName,omitempty"`
	TotalAmount      int                  `json:"totalAmount"`
	ItemCount        int                  `json:"itemCount"`
	FromStatus       *enums.OrderStatus   `json:"fromStatus,omitempty"`
	ToStatus         enums.OrderStatus    `json:"toStatus"`
	ChangedBy        string               `json:"changedBy,omitempty"`
	Memo             *string              `json:"memo,omitempty"`
	Carrier          enums.Carrier        `json:"carrier,omitempty"`
	TrackingNumber   string               `json:"trackingNumber,omitempty"`
}

// NewOrderEvent stamps a fresh event id and timestamp.
func NewOrderEvent(eventType enums.OrderEventType) OrderEvent {
	return OrderEvent{
		Version:    EventVersion,
		EventID:    uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// CustomerDisplay renders "name (organization)" when an organization is known.
func (e OrderEvent) CustomerDisplay() string {
	if e.OrganizationName != nil && *e.OrganizationName != "" {
		return e.CustomerName + " (" + *e.OrganizationName + ")"
	}
	return e.CustomerName
}
