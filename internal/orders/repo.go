package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/pagination"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) AppendHistory(ctx context.Context, entry *models.OrderStatusHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForAdmin pages a tenant's orders newest first and returns the next cursor.
func (r *repository) ListForAdmin(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters AdminOrderFilters) ([]models.Order, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items", orderedItems).
		Where("tenant_id = ?", tenantID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if phone := strings.TrimSpace(filters.CustomerPhone); phone != "" {
		query = query.Where("customer_phone = ?", phone)
	}
	if number := strings.TrimSpace(filters.OrderNumber); number != "" {
		query = query.Where("LOWER(order_number) LIKE ?", "%"+strings.ToLower(number)+"%")
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", filters.DateFrom.UTC())
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", filters.DateTo.UTC())
	}
	if cursor != nil {
		query = query.Where("((created_at < ?) OR (created_at = ? AND id < ?))", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error; err != nil {
		return nil, "", err
	}

	page, last := pagination.Trim(rows, params.Limit)
	next := ""
	if last != nil {
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, next, nil
}

func (r *repository) ListByPhone(ctx context.Context, tenantID uuid.UUID, phone string) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("tenant_id = ? AND customer_phone = ?", tenantID, phone).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// CountCreatedBetween counts a tenant's orders created in [from, to).
func (r *repository) CountCreatedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from.UTC(), to.UTC()).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[enums.OrderStatus]int64, error) {
	var rows []struct {
		Status enums.OrderStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[enums.OrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) error {
	return r.updateOrder(ctx, orderID, &models.Order{Status: status}, "status", "updated_at")
}

func (r *repository) UpdateAdminMemo(ctx context.Context, orderID uuid.UUID, memo *string) error {
	return r.updateOrder(ctx, orderID, &models.Order{AdminMemo: memo}, "admin_memo", "updated_at")
}

func (r *repository) UpdateTracking(ctx context.Context, orderID uuid.UUID, tracking types.TrackingInfo) error {
	return r.updateOrder(ctx, orderID, &models.Order{TrackingInfo: &tracking}, "tracking_info", "updated_at")
}

func (r *repository) TouchUpdatedAt(ctx context.Context, orderID uuid.UUID) error {
	return r.updateOrder(ctx, orderID, &models.Order{}, "updated_at")
}

func (r *repository) updateOrder(ctx context.Context, orderID uuid.UUID, values *models.Order, columns ...string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{ID: orderID}).
		Select(columns).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateItemDesign replaces one item's snapshot; the item must belong to orderID.
func (r *repository) UpdateItemDesign(ctx context.Context, orderID, itemID uuid.UUID, snapshot types.DesignSnapshot) error {
	if snapshot == nil {
		snapshot = types.DesignSnapshot{}
	}
	res := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("design_snapshot", snapshot)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item %s: %w", itemID, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *repository) History(ctx context.Context, orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Order("seq ASC").
		Find(&rows).Error
	return rows, err
}
