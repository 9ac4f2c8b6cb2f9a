package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

// Order is a customer purchase owned by a tenant.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID      uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null"`
	UserID        *uuid.UUID          `gorm:"column:user_id;type:uuid"`
	OrderNumber   string              `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerPhone string              `gorm:"column:customer_phone;not null"`
	CustomerEmail *string             `gorm:"column:customer_email"`
	ShippingInfo  types.ShippingInfo  `gorm:"column:shipping_info;type:jsonb;serializer:json"`
	Subtotal      int                 `gorm:"column:subtotal;not null"`
	ShippingCost  int                 `gorm:"column:shipping_cost;not null;default:0"`
	TotalAmount   int                 `gorm:"column:total_amount;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'pending'"`
	AdminMemo     *string             `gorm:"column:admin_memo"`
	TrackingInfo  *types.TrackingInfo `gorm:"column:tracking_info;type:jsonb;serializer:json"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one product, colour, size and quantity line with its frozen design.
type OrderItem struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID            `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	ProductName    string               `gorm:"column:product_name;not null"`
	Color          string               `gorm:"column:color;not null"`
	ColorLabel     string               `gorm:"column:color_label;not null"`
	Size           string               `gorm:"column:size;not null"`
	Quantity       int                  `gorm:"column:quantity;not null"`
	UnitPrice      int                  `gorm:"column:unit_price;not null"`
	TotalPrice     int                  `gorm:"column:total_price;not null"`
	DesignSnapshot types.DesignSnapshot `gorm:"column:design_snapshot;type:jsonb"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// OrderStatusHistory is an append-only record of one status transition.
type OrderStatusHistory struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID          `gorm:"column:order_id;type:uuid;not null"`
	FromStatus *enums.OrderStatus `gorm:"column:from_status;type:order_status"`
	ToStatus   enums.OrderStatus  `gorm:"column:to_status;type:order_status;not null"`
	ChangedBy  string             `gorm:"column:changed_by;not null"`
	Memo       *string            `gorm:"column:memo"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	Seq        int64              `gorm:"column:seq;<-:false"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
