package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/capstudio-backend/internal/notifications"
	"github.com/angelmondragon/capstudio-backend/internal/tenants"
	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/pagination"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders, their items and status history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, items []models.OrderItem) error
	AppendHistory(ctx context.Context, entry *models.OrderStatusHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListForAdmin(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters AdminOrderFilters) ([]models.Order, string, error)
	ListByPhone(ctx context.Context, tenantID uuid.UUID, phone string) ([]models.Order, error)
	ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]models.Order, error)
	CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[enums.OrderStatus]int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error
	UpdateAdminMemo(ctx context.Context, orderID uuid.UUID, memo *string) error
	UpdateTracking(ctx context.Context, orderID uuid.UUID, tracking types.TrackingInfo) error
	UpdateItemDesign(ctx context.Context, orderID, itemID uuid.UUID, snapshot types.DesignSnapshot) error
	TouchUpdatedAt(ctx context.Context, orderID uuid.UUID) error
	History(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// TenantLookup resolves the tenant an order belongs to, with settings merged over defaults.
type TenantLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*tenants.TenantDTO, error)
}

// ProductLookup loads products with their price tiers.
type ProductLookup interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// EventPublisher hands committed order events to the notification pipeline.
// Implementations must not block.
type EventPublisher interface {
	Publish(ctx context.Context, event notifications.OrderEvent) bool
}
