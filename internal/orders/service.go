package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/capstudio-backend/internal/notifications"
	"github.com/angelmondragon/capstudio-backend/internal/pricing"
	"github.com/angelmondragon/capstudio-backend/internal/tenants"
	"github.com/angelmondragon/capstudio-backend/pkg/db"
	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/metrics"
	"github.com/angelmondragon/capstudio-backend/pkg/pagination"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActorSystem = "system"
	ActorAdmin  = "admin"

	initialHistoryMemo = "주문 접수"
)

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetByNumber(ctx context.Context, orderNumber string) (*OrderDTO, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	History(ctx context.Context, orderID uuid.UUID) ([]HistoryDTO, error)
	ListForAdmin(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters AdminOrderFilters) (*AdminOrderList, error)
	ListByPhone(ctx context.Context, tenantID uuid.UUID, phone string) ([]SummaryDTO, error)
	ListByUser(ctx context.Context, tenantID, userID uuid.UUID, withItems bool) ([]SummaryDTO, error)
	Stats(ctx context.Context, tenantID uuid.UUID) (*StatsDTO, error)
	Transition(ctx context.Context, input TransitionInput) (*OrderDTO, error)
	AdminUpdate(ctx context.Context, orderNumber string, input AdminUpdateInput) (*OrderDTO, error)
	UpdateAdminMemo(ctx context.Context, orderID uuid.UUID, memo *string) (*OrderDTO, error)
	RegisterShipment(ctx context.Context, input ShipmentInput) (*ShippingDTO, error)
	GetShipping(ctx context.Context, orderNumber string) (*ShippingDTO, error)
	UpdateDesign(ctx context.Context, orderNumber string, items []DesignUpdate) error
}

// CreateOrderInput carries a checkout submission.
type CreateOrderInput struct {
	TenantID      uuid.UUID
	UserID        *uuid.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	ShippingInfo  types.ShippingInfo
	Items         []CreateItemInput
}

// CreateItemInput is one requested line. Unit prices are resolved server side
// from the product's tiers.
type CreateItemInput struct {
	ProductID    uuid.UUID
	ProductName  string
	Color        string
	ColorLabel   string
	Size         string
	Quantity     int
	DesignLayers types.DesignSnapshot
}

// TransitionInput moves an order to Status, recording Actor and Memo in history.
type TransitionInput struct {
	OrderID uuid.UUID
	Status  enums.OrderStatus
	Actor   string
	Memo    *string
}

// AdminUpdateInput combines an optional transition with an optional memo change.
type AdminUpdateInput struct {
	Status     *enums.OrderStatus
	ChangedBy  string
	StatusMemo *string
	AdminMemo  types.Nullable[string]
}

// ShipmentInput registers the parcel handed to a carrier.
type ShipmentInput struct {
	OrderNumber    string
	Carrier        enums.Carrier
	TrackingNumber string
}

// DesignUpdate replaces the design snapshot of one order item.
type DesignUpdate struct {
	ItemID         uuid.UUID
	DesignSnapshot types.DesignSnapshot
}

// Option customizes the service.
type Option func(*service)

// WithClock overrides the time source used for order numbers and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the store timezone used for the order-number date.
func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithDefaultTenant sets the tenant used when a checkout names none.
func WithDefaultTenant(id uuid.UUID) Option {
	return func(s *service) {
		if id != uuid.Nil {
			s.defaultTenantID = id
		}
	}
}

func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *service) {
		s.metrics = m
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(s *service) {
		s.logg = logg
	}
}

type service struct {
	repo     Repository
	tx       txRunner
	tenants  TenantLookup
	products ProductLookup
	events   EventPublisher

	now             func() time.Time
	loc             *time.Location
	defaultTenantID uuid.UUID
	metrics         *metrics.OrderMetrics
	logg            *logger.Logger
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, tx txRunner, tenantLookup TenantLookup, products ProductLookup, events EventPublisher, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if tenantLookup == nil {
		return nil, fmt.Errorf("tenant lookup required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	s := &service{
		repo:     repo,
		tx:       tx,
		tenants:  tenantLookup,
		products: products,
		events:   events,
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	tenantID := input.TenantID
	if tenantID == uuid.Nil {
		tenantID = s.defaultTenantID
	}
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	tenant, err := s.tenants.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items, subtotal, err := s.priceItems(ctx, tenantID, input.Items)
	if err != nil {
		return nil, err
	}
	shipping := tenants.ShippingFee(tenant.Settings, subtotal)

	now := s.now().UTC()
	orderNumber := s.nextOrderNumber(ctx, s.repo, tenantID, tenant.Slug, now)
	order := &models.Order{
		ID:            uuid.New(),
		TenantID:      tenantID,
		UserID:        input.UserID,
		OrderNumber:   orderNumber,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		CustomerEmail: trimOptional(input.CustomerEmail),
		ShippingInfo:  input.ShippingInfo,
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		TotalAmount:   subtotal + shipping,
		Status:        enums.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range items {
		items[i].OrderID = order.ID
		items[i].CreatedAt = now
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return mapWriteError(err, "db: insert order")
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return mapWriteError(err, "db: insert order items")
		}
		memo := initialHistoryMemo
		return appendHistory(ctx, repo, order.ID, nil, enums.OrderStatusPending, ActorSystem, &memo, now)
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	s.metrics.IncCreated(tenant.Slug)

	event := notifications.NewOrderEvent(enums.OrderEventCreated)
	fillEvent(&event, order)
	event.ToStatus = enums.OrderStatusPending
	event.ChangedBy = ActorSystem
	s.events.Publish(ctx, event)
	s.logInfo(ctx, order.OrderNumber, "order created")

	return NewOrderDTO(order), nil
}

// priceItems resolves every line's unit price from the product tier table.
// Tiers apply to the total quantity ordered per product.
func (s *service) priceItems(ctx context.Context, tenantID uuid.UUID, lines []CreateItemInput) ([]models.OrderItem, int, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	quantities := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if _, seen := quantities[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	details := map[string]string{}
	for idx, line := range lines {
		product, ok := products[line.ProductID]
		switch {
		case !ok || product.TenantID != tenantID:
			details[fmt.Sprintf("items[%d].productId", idx)] = "unknown product"
		case !product.IsActive:
			details[fmt.Sprintf("items[%d].productId", idx)] = "product is not available"
		}
	}
	if len(details) > 0 {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid order items").WithDetails(details)
	}

	items := make([]models.OrderItem, 0, len(lines))
	subtotal := 0
	for _, line := range lines {
		product := products[line.ProductID]
		unit := pricing.ResolveUnitPrice(product.BasePrice, quantities[line.ProductID], pricing.FromModels(product.PriceTiers))
		name := strings.TrimSpace(line.ProductName)
		if name == "" {
			name = product.Name
		}
		snapshot := line.DesignLayers
		if snapshot == nil {
			snapshot = types.DesignSnapshot{}
		}
		items = append(items, models.OrderItem{
			ID:             uuid.New(),
			ProductID:      product.ID,
			ProductName:    name,
			Color:          line.Color,
			ColorLabel:     line.ColorLabel,
			Size:           line.Size,
			Quantity:       line.Quantity,
			UnitPrice:      unit,
			TotalPrice:     unit * line.Quantity,
			DesignSnapshot: snapshot,
		})
		subtotal += unit * line.Quantity
	}
	return items, subtotal, nil
}

func (s *service) GetByNumber(ctx context.Context, orderNumber string) (*OrderDTO, error) {
	order, err := s.findByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.withHistory(ctx, order)
}

func (s *service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, mapLookupError(err, "order not found")
	}
	return s.withHistory(ctx, order)
}

func (s *service) withHistory(ctx context.Context, order *models.Order) (*OrderDTO, error) {
	rows, err := s.repo.History(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load status history")
	}
	dto := NewOrderDTO(order)
	dto.StatusHistory = NewHistoryDTOs(rows)
	return dto, nil
}

func (s *service) History(ctx context.Context, orderID uuid.UUID) ([]HistoryDTO, error) {
	rows, err := s.repo.History(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load status history")
	}
	return NewHistoryDTOs(rows), nil
}

func (s *service) ListForAdmin(ctx context.Context, tenantID uuid.UUID, params pagination.Params, filters AdminOrderFilters) (*AdminOrderList, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateFrom.After(*filters.DateTo) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dateFrom must not be after dateTo")
	}

	rows, next, err := s.repo.ListForAdmin(ctx, tenantID, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	out := &AdminOrderList{Orders: make([]OrderDTO, 0, len(rows)), NextCursor: next}
	for i := range rows {
		out.Orders = append(out.Orders, *NewOrderDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) ListByPhone(ctx context.Context, tenantID uuid.UUID, phone string) ([]SummaryDTO, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	}
	rows, err := s.repo.ListByPhone(ctx, tenantID, phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders by phone")
	}
	return summaries(rows, false), nil
}

func (s *service) ListByUser(ctx context.Context, tenantID, userID uuid.UUID, withItems bool) ([]SummaryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders by user")
	}
	return summaries(rows, withItems), nil
}

func summaries(rows []models.Order, withItems bool) []SummaryDTO {
	out := make([]SummaryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, NewSummaryDTO(&rows[i], withItems))
	}
	return out
}

func (s *service) Stats(ctx context.Context, tenantID uuid.UUID) (*StatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders by status")
	}
	stats := &StatsDTO{ByStatus: make(map[enums.OrderStatus]int64)}
	for _, status := range enums.OrderStatuses() {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}
	return stats, nil
}

// Transition applies any status change, including backward moves and
// re-entering the current status, and appends one history row.
func (s *service) Transition(ctx context.Context, input TransitionInput) (*OrderDTO, error) {
	if !input.Status.IsValid() {
		return nil, invalidStatus(input.Status)
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var (
		order *models.Order
		from  enums.OrderStatus
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			return mapLookupError(err, "order not found")
		}
		from, err = s.applyTransition(ctx, repo, current, input.Status, input.Actor, input.Memo)
		order = current
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, order, from, input.Actor, input.Memo)
	return s.GetByID(ctx, order.ID)
}

func (s *service) AdminUpdate(ctx context.Context, orderNumber string, input AdminUpdateInput) (*OrderDTO, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, invalidStatus(*input.Status)
	}
	if input.Status == nil && !input.AdminMemo.Set {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status or adminMemo required")
	}

	existing, err := s.findByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	var from enums.OrderStatus
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, existing.ID)
		if err != nil {
			return mapLookupError(err, "order not found")
		}
		if input.Status != nil {
			if from, err = s.applyTransition(ctx, repo, current, *input.Status, input.ChangedBy, input.StatusMemo); err != nil {
				return err
			}
		}
		if input.AdminMemo.Set {
			if err := repo.UpdateAdminMemo(ctx, current.ID, trimOptional(input.AdminMemo.Value)); err != nil {
				return mapLookupError(err, "order not found")
			}
		}
		existing = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		s.afterTransition(ctx, existing, from, input.ChangedBy, input.StatusMemo)
	}
	return s.GetByID(ctx, existing.ID)
}

func (s *service) UpdateAdminMemo(ctx context.Context, orderID uuid.UUID, memo *string) (*OrderDTO, error) {
	if err := s.repo.UpdateAdminMemo(ctx, orderID, trimOptional(memo)); err != nil {
		return nil, mapLookupError(err, "order not found")
	}
	return s.GetByID(ctx, orderID)
}

// RegisterShipment stores tracking info and moves the order to shipped in one transaction.
func (s *service) RegisterShipment(ctx context.Context, input ShipmentInput) (*ShippingDTO, error) {
	trackingNumber := strings.TrimSpace(input.TrackingNumber)
	details := map[string]string{}
	if !input.Carrier.IsValid() {
		details["carrier"] = "must be one of cj, hanjin, logen, lotte, post"
	}
	if trackingNumber == "" {
		details["trackingNumber"] = "required"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carrier and trackingNumber are required").WithDetails(details)
	}

	existing, err := s.findByNumber(ctx, input.OrderNumber)
	if err != nil {
		return nil, err
	}

	tracking := types.TrackingInfo{
		Carrier:        input.Carrier,
		TrackingNumber: trackingNumber,
		ShippedAt:      s.now().UTC(),
	}
	memo := fmt.Sprintf("송장등록: %s %s", input.Carrier, trackingNumber)

	var (
		order *models.Order
		from  enums.OrderStatus
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, existing.ID)
		if err != nil {
			return mapLookupError(err, "order not found")
		}
		if err := repo.UpdateTracking(ctx, current.ID, tracking); err != nil {
			return mapLookupError(err, "order not found")
		}
		current.TrackingInfo = &tracking
		from, err = s.applyTransition(ctx, repo, current, enums.OrderStatusShipped, ActorAdmin, &memo)
		order = current
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncTransition(from.String(), order.Status.String())
	event := notifications.NewOrderEvent(enums.OrderEventShipped)
	fillEvent(&event, order)
	event.FromStatus = &from
	event.ToStatus = order.Status
	event.ChangedBy = ActorAdmin
	event.Memo = &memo
	event.Carrier = tracking.Carrier
	event.TrackingNumber = tracking.TrackingNumber
	s.events.Publish(ctx, event)
	s.logInfo(ctx, order.OrderNumber, "shipment registered")

	return NewShippingDTO(order), nil
}

func (s *service) GetShipping(ctx context.Context, orderNumber string) (*ShippingDTO, error) {
	order, err := s.findByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return NewShippingDTO(order), nil
}

// UpdateDesign replaces item snapshots while the order is still pending. Text
// layers must use a colour from the tenant's print palette.
func (s *service) UpdateDesign(ctx context.Context, orderNumber string, items []DesignUpdate) error {
	order, err := s.findByNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if order.Status != enums.OrderStatusPending {
		return errDesignLocked()
	}
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "items required")
	}

	tenant, err := s.tenants.Get(ctx, order.TenantID)
	if err != nil {
		return err
	}
	if details := invalidTextColors(items, tenant.Settings.PrintColorPalette); len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "text colour must be chosen from the print palette").WithDetails(details)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByID(ctx, order.ID)
		if err != nil {
			return mapLookupError(err, "order not found")
		}
		if current.Status != enums.OrderStatusPending {
			return errDesignLocked()
		}
		for _, item := range items {
			if err := repo.UpdateItemDesign(ctx, current.ID, item.ItemID, item.DesignSnapshot); err != nil {
				return mapLookupError(err, "order item not found")
			}
		}
		if err := repo.TouchUpdatedAt(ctx, current.ID); err != nil {
			return mapLookupError(err, "order not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logInfo(ctx, order.OrderNumber, "order design updated")
	return nil
}

// applyTransition writes the new status and its history row. It returns the previous status.
func (s *service) applyTransition(ctx context.Context, repo Repository, order *models.Order, status enums.OrderStatus, actor string, memo *string) (enums.OrderStatus, error) {
	from := order.Status
	if err := repo.UpdateStatus(ctx, order.ID, status); err != nil {
		return from, mapLookupError(err, "order not found")
	}
	if err := appendHistory(ctx, repo, order.ID, &from, status, actorOrDefault(actor), trimOptional(memo), s.now().UTC()); err != nil {
		return from, err
	}
	order.Status = status
	return from, nil
}

func (s *service) afterTransition(ctx context.Context, order *models.Order, from enums.OrderStatus, actor string, memo *string) {
	s.metrics.IncTransition(from.String(), order.Status.String())

	eventType := enums.OrderEventStatusChanged
	if order.Status == enums.OrderStatusCancelled {
		eventType = enums.OrderEventCancelled
	}
	event := notifications.NewOrderEvent(eventType)
	fillEvent(&event, order)
	event.FromStatus = &from
	event.ToStatus = order.Status
	event.ChangedBy = actorOrDefault(actor)
	event.Memo = trimOptional(memo)
	s.events.Publish(ctx, event)
	s.logInfo(ctx, order.OrderNumber, fmt.Sprintf("order status %s -> %s", from, order.Status))
}

func appendHistory(ctx context.Context, repo Repository, orderID uuid.UUID, from *enums.OrderStatus, to enums.OrderStatus, actor string, memo *string, at time.Time) error {
	entry := &models.OrderStatusHistory{
		ID:         uuid.New(),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  actor,
		Memo:       memo,
		CreatedAt:  at,
	}
	if err := repo.AppendHistory(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert status history")
	}
	return nil
}

func (s *service) findByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	order, err := s.repo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, mapLookupError(err, "order not found")
	}
	return order, nil
}

func fillEvent(event *notifications.OrderEvent, order *models.Order) {
	event.TenantID = order.TenantID
	event.OrderID = order.ID
	event.OrderNumber = order.OrderNumber
	event.CustomerName = order.CustomerName
	event.OrganizationName = order.ShippingInfo.OrganizationName
	event.TotalAmount = order.TotalAmount
	event.ItemCount = len(order.Items)
}

func invalidTextColors(items []DesignUpdate, palette []types.PrintColor) map[string]string {
	details := map[string]string{}
	for i, item := range items {
		for j, layer := range item.DesignSnapshot {
			if layer.Type != enums.DesignLayerText {
				continue
			}
			color := ""
			if layer.Color != nil {
				color = *layer.Color
			}
			if !tenants.IsAllowedPrintColor(color, palette) {
				details[fmt.Sprintf("items[%d].designSnapshot[%d].color", i, j)] = "not in print palette"
			}
		}
	}
	return details
}

func validateCreate(input CreateOrderInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		details["customerName"] = "required"
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		details["customerPhone"] = "required"
	}
	if strings.TrimSpace(input.ShippingInfo.RecipientName) == "" {
		details["shippingInfo.recipientName"] = "required"
	}
	if strings.TrimSpace(input.ShippingInfo.Phone) == "" {
		details["shippingInfo.phone"] = "required"
	}
	if strings.TrimSpace(input.ShippingInfo.Address) == "" {
		details["shippingInfo.address"] = "required"
	}
	if len(input.Items) == 0 {
		details["items"] = "at least one item required"
	}
	for i, item := range input.Items {
		if item.ProductID == uuid.Nil {
			details[fmt.Sprintf("items[%d].productId", i)] = "required"
		}
		if item.Quantity < 1 {
			details[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order").WithDetails(details)
	}
	return nil
}

func invalidStatus(status enums.OrderStatus) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
		WithDetails(map[string]string{"status": fmt.Sprintf("%q is not a valid status", status)})
}

func errDesignLocked() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "design can only be edited while the order is pending")
}

func actorOrDefault(actor string) string {
	if trimmed := strings.TrimSpace(actor); trimmed != "" {
		return trimmed
	}
	return ActorAdmin
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapLookupError(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order number already taken; retry the order")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

func (s *service) logInfo(ctx context.Context, orderNumber, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithOrderNumber(ctx, orderNumber), msg)
}

func (s *service) logWarn(ctx context.Context, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(ctx, msg)
}
