package orders

import (
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
)

// AdminOrderFilters describe the inputs supported by the admin orders list.
type AdminOrderFilters struct {
	Status        *enums.OrderStatus
	CustomerPhone string
	OrderNumber   string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// ItemDTO is one order line as returned to clients.
type ItemDTO struct {
	ID             uuid.UUID            `json:"id"`
	ProductID      uuid.UUID            `json:"productId"`
	ProductName    string               `json:"productName"`
	Color          string               `json:"color"`
	ColorLabel     string               `json:"colorLabel"`
	Size           string               `json:"size"`
	Quantity       int                  `json:"quantity"`
	UnitPrice      int                  `json:"unitPrice"`
	TotalPrice     int                  `json:"totalPrice"`
	DesignSnapshot types.DesignSnapshot `json:"designSnapshot"`
}

// HistoryDTO is one status transition with display labels.
type HistoryDTO struct {
	ID              uuid.UUID          `json:"id"`
	FromStatus      *enums.OrderStatus `json:"fromStatus"`
	FromStatusLabel *string            `json:"fromStatusLabel"`
	ToStatus        enums.OrderStatus  `json:"toStatus"`
	ToStatusLabel   string             `json:"toStatusLabel"`
	ChangedBy       string             `json:"changedBy"`
	Memo            *string            `json:"memo"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// OrderDTO is the full order view used by detail and admin responses.
type OrderDTO struct {
	ID            uuid.UUID           `json:"id"`
	TenantID      uuid.UUID           `json:"tenantId"`
	UserID        *uuid.UUID          `json:"userId,omitempty"`
	OrderNumber   string              `json:"orderNumber"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	CustomerEmail *string             `json:"customerEmail"`
	ShippingInfo  types.ShippingInfo  `json:"shippingInfo"`
	Items         []ItemDTO           `json:"items"`
	Subtotal      int                 `json:"subtotal"`
	ShippingCost  int                 `json:"shippingCost"`
	TotalAmount   int                 `json:"totalAmount"`
	Status        enums.OrderStatus   `json:"status"`
	StatusLabel   string              `json:"statusLabel"`
	Progress      int                 `json:"progress"`
	AdminMemo     *string             `json:"adminMemo"`
	TrackingInfo  *types.TrackingInfo `json:"trackingInfo"`
	StatusHistory []HistoryDTO        `json:"statusHistory,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// SummaryItemDTO is the compact line shown in customer order lists.
type SummaryItemDTO struct {
	ProductName string `json:"productName"`
	ColorLabel  string `json:"colorLabel"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
}

// SummaryDTO is the customer-facing order list row.
type SummaryDTO struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber string            `json:"orderNumber"`
	Status      enums.OrderStatus `json:"status"`
	StatusLabel string            `json:"statusLabel"`
	TotalAmount int               `json:"totalAmount"`
	ItemCount   int               `json:"itemCount"`
	Items       []SummaryItemDTO  `json:"items,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// AdminOrderList wraps paginated admin orders plus the next page cursor.
type AdminOrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// ShippingDTO is the public shipping lookup response.
type ShippingDTO struct {
	OrderNumber  string              `json:"orderNumber"`
	Status       enums.OrderStatus   `json:"status"`
	StatusLabel  string              `json:"statusLabel"`
	TrackingInfo *types.TrackingInfo `json:"trackingInfo"`
	ShippingInfo types.ShippingInfo  `json:"shippingInfo"`
}

// StatsDTO counts a tenant's orders per status; every status is present.
type StatsDTO struct {
	Total    int64                       `json:"total"`
	ByStatus map[enums.OrderStatus]int64 `json:"byStatus"`
}

// NewOrderDTO maps an order and its loaded items.
func NewOrderDTO(order *models.Order) *OrderDTO {
	items := make([]ItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, newItemDTO(item))
	}
	return &OrderDTO{
		ID:            order.ID,
		TenantID:      order.TenantID,
		UserID:        order.UserID,
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		ShippingInfo:  order.ShippingInfo,
		Items:         items,
		Subtotal:      order.Subtotal,
		ShippingCost:  order.ShippingCost,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		StatusLabel:   order.Status.Label(),
		Progress:      order.Status.Progress(),
		AdminMemo:     order.AdminMemo,
		TrackingInfo:  order.TrackingInfo,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func newItemDTO(item models.OrderItem) ItemDTO {
	snapshot := item.DesignSnapshot
	if snapshot == nil {
		snapshot = types.DesignSnapshot{}
	}
	return ItemDTO{
		ID:             item.ID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Color:          item.Color,
		ColorLabel:     item.ColorLabel,
		Size:           item.Size,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		TotalPrice:     item.TotalPrice,
		DesignSnapshot: snapshot,
	}
}

// NewHistoryDTOs maps history rows, keeping their order.
func NewHistoryDTOs(rows []models.OrderStatusHistory) []HistoryDTO {
	out := make([]HistoryDTO, 0, len(rows))
	for _, row := range rows {
		dto := HistoryDTO{
			ID:            row.ID,
			FromStatus:    row.FromStatus,
			ToStatus:      row.ToStatus,
			ToStatusLabel: row.ToStatus.Label(),
			ChangedBy:     row.ChangedBy,
			Memo:          row.Memo,
			CreatedAt:     row.CreatedAt,
		}
		if row.FromStatus != nil {
			label := row.FromStatus.Label()
			dto.FromStatusLabel = &label
		}
		out = append(out, dto)
	}
	return out
}

// NewSummaryDTO maps a list row; withItems adds the compact item lines.
func NewSummaryDTO(order *models.Order, withItems bool) SummaryDTO {
	dto := SummaryDTO{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		StatusLabel: order.Status.Label(),
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
	if withItems {
		dto.Items = make([]SummaryItemDTO, 0, len(order.Items))
		for _, item := range order.Items {
			dto.Items = append(dto.Items, SummaryItemDTO{
				ProductName: item.ProductName,
				ColorLabel:  item.ColorLabel,
				Size:        item.Size,
				Quantity:    item.Quantity,
			})
		}
	}
	return dto
}

// NewShippingDTO maps the shipping lookup view.
func NewShippingDTO(order *models.Order) *ShippingDTO {
	return &ShippingDTO{
		OrderNumber:  order.OrderNumber,
		Status:       order.Status,
		StatusLabel:  order.Status.Label(),
		TrackingInfo: order.TrackingInfo,
		ShippingInfo: order.ShippingInfo,
	}
}

// Public drops fields reserved for tenant staff.
func (o OrderDTO) Public() OrderDTO {
	o.AdminMemo = nil
	return o
}
