package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/capstudio-backend/internal/testdb"
	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/pagination"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

func insertOrder(t *testing.T, repo Repository, number, phone string, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            uuid.New(),
		TenantID:      testdb.DefaultTenantID,
		OrderNumber:   number,
		CustomerName:  "Lee",
		CustomerPhone: phone,
		Subtotal:      22400,
		TotalAmount:   25400,
		ShippingCost:  3000,
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	_, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItems(context.Background(), []models.OrderItem{{
		ID:          uuid.New(),
		OrderID:     order.ID,
		ProductID:   uuid.New(),
		ProductName: "Runner Cap",
		Color:       "black",
		ColorLabel:  "Midnight Black",
		Size:        "FREE",
		Quantity:    1,
		UnitPrice:   22400,
		TotalPrice:  22400,
		CreatedAt:   createdAt,
	}}))
	return order
}

func TestRepositoryListForAdminFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t))
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	insertOrder(t, repo, "RU-20260301-001", "010-1111-1111", enums.OrderStatusPending, base)
	insertOrder(t, repo, "RU-20260302-001", "010-2222-2222", enums.OrderStatusShipped, base.Add(24*time.Hour))
	insertOrder(t, repo, "RU-20260303-001", "010-1111-1111", enums.OrderStatusShipped, base.Add(48*time.Hour))

	shipped := enums.OrderStatusShipped
	rows, _, err := repo.ListForAdmin(ctx, testdb.DefaultTenantID, pagination.Params{}, AdminOrderFilters{Status: &shipped})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "RU-20260303-001", rows[0].OrderNumber)
	assert.Len(t, rows[0].Items, 1)

	rows, _, err = repo.ListForAdmin(ctx, testdb.DefaultTenantID, pagination.Params{}, AdminOrderFilters{CustomerPhone: "010-1111-1111"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, _, err = repo.ListForAdmin(ctx, testdb.DefaultTenantID, pagination.Params{}, AdminOrderFilters{OrderNumber: "ru-20260302"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "RU-20260302-001", rows[0].OrderNumber)

	from := base.Add(12 * time.Hour)
	to := base.Add(36 * time.Hour)
	rows, _, err = repo.ListForAdmin(ctx, testdb.DefaultTenantID, pagination.Params{}, AdminOrderFilters{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "RU-20260302-001", rows[0].OrderNumber)

	rows, _, err = repo.ListForAdmin(ctx, uuid.New(), pagination.Params{}, AdminOrderFilters{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryCountCreatedBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t))
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	insertOrder(t, repo, "RU-1", "010", enums.OrderStatusPending, day.Add(time.Hour))
	insertOrder(t, repo, "RU-2", "010", enums.OrderStatusPending, day.Add(23*time.Hour))
	insertOrder(t, repo, "RU-3", "010", enums.OrderStatusPending, day.Add(24*time.Hour))

	count, err := repo.CountCreatedBetween(ctx, testdb.DefaultTenantID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepositoryUpdateItemDesignScopedToOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(testdb.Open(t))
	now := time.Now().UTC()
	first := insertOrder(t, repo, "RU-1", "010", enums.OrderStatusPending, now)
	second := insertOrder(t, repo, "RU-2", "010", enums.OrderStatusPending, now)

	loaded, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	itemID := loaded.Items[0].ID

	snapshot := types.DesignSnapshot{{ID: "a", Type: enums.DesignLayerImage, Content: "https://cdn.example/logo.png"}}
	err = repo.UpdateItemDesign(ctx, first.ID, itemID, snapshot)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.UpdateItemDesign(ctx, second.ID, itemID, snapshot))
	loaded, err = repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items[0].DesignSnapshot, 1)
	assert.Equal(t, "a", loaded.Items[0].DesignSnapshot[0].ID)
}

func TestRepositoryUpdateStatusMissingOrder(t *testing.T) {
	repo := NewRepository(testdb.Open(t))

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryHistoryKeepsInsertOrderWithinSameTimestamp(t *testing.T) {
	repo := NewRepository(testdb.Open(t))
	ctx := context.Background()
	at := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	order := insertOrder(t, repo, "20260310-0001", "01012345678", enums.OrderStatusPending, at)

	pending := enums.OrderStatusPending
	confirmed := enums.OrderStatusDesignConfirmed
	producing := enums.OrderStatusInProduction
	steps := []struct {
		from *enums.OrderStatus
		to   enums.OrderStatus
	}{
		{nil, enums.OrderStatusPending},
		{&pending, enums.OrderStatusDesignConfirmed},
		{&confirmed, enums.OrderStatusInProduction},
		{&producing, enums.OrderStatusShipped},
	}
	for _, step := range steps {
		require.NoError(t, repo.AppendHistory(ctx, &models.OrderStatusHistory{
			ID:         uuid.New(),
			OrderID:    order.ID,
			FromStatus: step.from,
			ToStatus:   step.to,
			ChangedBy:  "admin",
			CreatedAt:  at,
		}))
	}

	rows, err := repo.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, rows, len(steps))
	for i, row := range rows {
		assert.Equal(t, steps[i].to, row.ToStatus)
		assert.True(t, row.CreatedAt.Equal(at))
		if i > 0 {
			assert.Greater(t, row.Seq, rows[i-1].Seq)
		}
	}
}
