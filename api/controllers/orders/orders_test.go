package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	internalorders "github.com/angelmondragon/capstudio-backend/internal/orders"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/pagination"
)

type stubService struct {
	createInput   *internalorders.CreateOrderInput
	adminInput    *internalorders.AdminUpdateInput
	shipmentInput *internalorders.ShipmentInput
	designUpdates []internalorders.DesignUpdate
	listParams    pagination.Params
	listFilters   internalorders.AdminOrderFilters
	phone         string
	userID        uuid.UUID
	withItems     bool
	order         *internalorders.OrderDTO
	err           error
}

func (s *stubService) Create(_ context.Context, input internalorders.CreateOrderInput) (*internalorders.OrderDTO, error) {
	s.createInput = &input
	return s.order, s.err
}

func (s *stubService) GetByNumber(_ context.Context, _ string) (*internalorders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubService) GetByID(_ context.Context, _ uuid.UUID) (*internalorders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubService) History(_ context.Context, _ uuid.UUID) ([]internalorders.HistoryDTO, error) {
	return nil, s.err
}

func (s *stubService) ListForAdmin(_ context.Context, _ uuid.UUID, params pagination.Params, filters internalorders.AdminOrderFilters) (*internalorders.AdminOrderList, error) {
	s.listParams = params
	s.listFilters = filters
	return &internalorders.AdminOrderList{Orders: []internalorders.OrderDTO{}}, s.err
}

func (s *stubService) ListByPhone(_ context.Context, _ uuid.UUID, phone string) ([]internalorders.SummaryDTO, error) {
	s.phone = phone
	return []internalorders.SummaryDTO{}, s.err
}

func (s *stubService) ListByUser(_ context.Context, _ uuid.UUID, userID uuid.UUID, withItems bool) ([]internalorders.SummaryDTO, error) {
	s.userID = userID
	s.withItems = withItems
	return []internalorders.SummaryDTO{}, s.err
}

func (s *stubService) Stats(_ context.Context, _ uuid.UUID) (*internalorders.StatsDTO, error) {
	return &internalorders.StatsDTO{}, s.err
}

func (s *stubService) Transition(_ context.Context, _ internalorders.TransitionInput) (*internalorders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubService) AdminUpdate(_ context.Context, _ string, input internalorders.AdminUpdateInput) (*internalorders.OrderDTO, error) {
	s.adminInput = &input
	return s.order, s.err
}

func (s *stubService) UpdateAdminMemo(_ context.Context, _ uuid.UUID, _ *string) (*internalorders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubService) RegisterShipment(_ context.Context, input internalorders.ShipmentInput) (*internalorders.ShippingDTO, error) {
	s.shipmentInput = &input
	return &internalorders.ShippingDTO{OrderNumber: input.OrderNumber, Status: enums.OrderStatusShipped}, s.err
}

func (s *stubService) GetShipping(_ context.Context, orderNumber string) (*internalorders.ShippingDTO, error) {
	return &internalorders.ShippingDTO{OrderNumber: orderNumber}, s.err
}

func (s *stubService) UpdateDesign(_ context.Context, _ string, items []internalorders.DesignUpdate) error {
	s.designUpdates = items
	return s.err
}

func serve(t *testing.T, method, pattern, target, body string, handler http.HandlerFunc, tenantID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithTenantID(r.Context(), tenantID)))
		})
	})
	router.Method(method, pattern, handler)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestCreateUsesResolvedTenantAndIgnoresClientPrices(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	svc := &stubService{order: &internalorders.OrderDTO{
		ID:          uuid.New(),
		OrderNumber: "RU-20260310-001",
		Status:      enums.OrderStatusPending,
		TotalAmount: 227000,
		CreatedAt:   time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC),
	}}

	body := `{
		"customerName": "홍길동",
		"customerPhone": "010-1234-5678",
		"shippingInfo": {"recipientName": "홍길동", "phone": "010-1234-5678", "address": "서울시"},
		"items": [{"productId": "` + productID.String() + `", "quantity": 10, "unitPrice": 1, "size": "FREE"}]
	}`
	rec := serve(t, http.MethodPost, "/api/orders", "/api/orders", body, Create(svc, nil), tenantID)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.createInput)
	assert.Equal(t, tenantID, svc.createInput.TenantID)
	require.Len(t, svc.createInput.Items, 1)
	assert.Equal(t, productID, svc.createInput.Items[0].ProductID)
	assert.Equal(t, 10, svc.createInput.Items[0].Quantity)

	payload := decodeEnvelope(t, rec)
	assert.Equal(t, true, payload["success"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, "RU-20260310-001", data["orderNumber"])
	assert.Equal(t, "pending", data["status"])
}

func TestCreateRejectsMissingItems(t *testing.T) {
	svc := &stubService{}
	body := `{"customerName":"a","customerPhone":"b","shippingInfo":{"recipientName":"a","phone":"b","address":"c"},"items":[]}`
	rec := serve(t, http.MethodPost, "/api/orders", "/api/orders", body, Create(svc, nil), uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.createInput)
}

func TestListRequiresPhoneOrUser(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, http.MethodGet, "/api/orders", "/api/orders", "", List(svc, nil), uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListByPhoneAndUser(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, http.MethodGet, "/api/orders", "/api/orders?phone=01012345678", "", List(svc, nil), uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "01012345678", svc.phone)

	userID := uuid.New()
	rec = serve(t, http.MethodGet, "/api/orders", "/api/orders?userId="+userID.String()+"&detail=true", "", List(svc, nil), uuid.New())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.userID)
	assert.True(t, svc.withItems)
}

func TestDetailHidesAdminMemo(t *testing.T) {
	memo := "VIP"
	svc := &stubService{order: &internalorders.OrderDTO{OrderNumber: "RU-20260310-001", AdminMemo: &memo}}
	rec := serve(t, http.MethodGet, "/api/orders/{orderNumber}", "/api/orders/RU-20260310-001", "", Detail(svc, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Nil(t, data["adminMemo"])
}

func TestDetailNotFound(t *testing.T) {
	svc := &stubService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	rec := serve(t, http.MethodGet, "/api/orders/{orderNumber}", "/api/orders/RU-0", "", Detail(svc, nil), uuid.New())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	payload := decodeEnvelope(t, rec)
	assert.Equal(t, false, payload["success"])
}

func TestUpdateDesignForwardsItems(t *testing.T) {
	itemID := uuid.New()
	svc := &stubService{}
	body := `{"items":[{"id":"` + itemID.String() + `","designSnapshot":[{"id":"l1","type":"text","content":"TEAM","x":1,"y":2,"width":3,"height":4,"rotation":0,"flipX":false,"flipY":false,"view":"front","color":"#FFFFFF"}]}]}`
	rec := serve(t, http.MethodPatch, "/api/orders/{orderNumber}/design", "/api/orders/RU-1/design", body, UpdateDesign(svc, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.designUpdates, 1)
	assert.Equal(t, itemID, svc.designUpdates[0].ItemID)
	require.Len(t, svc.designUpdates[0].DesignSnapshot, 1)
	assert.Equal(t, enums.DesignLayerText, svc.designUpdates[0].DesignSnapshot[0].Type)
}

func TestUpdateDesignLockedOrder(t *testing.T) {
	svc := &stubService{err: pkgerrors.New(pkgerrors.CodeForbidden, "design can only be edited while the order is pending")}
	body := `{"items":[{"id":"` + uuid.NewString() + `","designSnapshot":[]}]}`
	rec := serve(t, http.MethodPatch, "/api/orders/{orderNumber}/design", "/api/orders/RU-1/design", body, UpdateDesign(svc, nil), uuid.New())

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminUpdateParsesStatusAndMemo(t *testing.T) {
	svc := &stubService{order: &internalorders.OrderDTO{OrderNumber: "RU-1"}}
	body := `{"status":"preparing","statusMemo":"작업 시작","adminMemo":null}`
	rec := serve(t, http.MethodPatch, "/api/admin/orders/{orderNumber}", "/api/admin/orders/RU-1", body, AdminUpdate(svc, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.adminInput)
	require.NotNil(t, svc.adminInput.Status)
	assert.Equal(t, enums.OrderStatusPreparing, *svc.adminInput.Status)
	assert.True(t, svc.adminInput.AdminMemo.IsNull())
	require.NotNil(t, svc.adminInput.StatusMemo)
	assert.Equal(t, "작업 시작", *svc.adminInput.StatusMemo)
}

func TestRegisterShipmentNormalizesCarrier(t *testing.T) {
	svc := &stubService{}
	body := `{"carrier":" CJ ","trackingNumber":"1234567890"}`
	rec := serve(t, http.MethodPost, "/api/admin/orders/{orderNumber}/shipping", "/api/admin/orders/RU-1/shipping", body, RegisterShipment(svc, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.shipmentInput)
	assert.Equal(t, enums.CarrierCJ, svc.shipmentInput.Carrier)
	assert.Equal(t, "RU-1", svc.shipmentInput.OrderNumber)
}

func TestAdminListFilters(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	svc := &stubService{}
	target := "/api/admin/orders?status=shipped&phone=010&dateFrom=2026-03-01&dateTo=2026-03-10&limit=10&cursor=abc"
	rec := serve(t, http.MethodGet, "/api/admin/orders", target, "", AdminList(svc, seoul, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, svc.listParams.Limit)
	assert.Equal(t, "abc", svc.listParams.Cursor)
	require.NotNil(t, svc.listFilters.Status)
	assert.Equal(t, enums.OrderStatusShipped, *svc.listFilters.Status)
	assert.Equal(t, "010", svc.listFilters.CustomerPhone)
	require.NotNil(t, svc.listFilters.DateFrom)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, seoul), *svc.listFilters.DateFrom)
	require.NotNil(t, svc.listFilters.DateTo)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, seoul).Add(-time.Nanosecond), *svc.listFilters.DateTo)
}

func TestAdminListRejectsUnknownStatus(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, http.MethodGet, "/api/admin/orders", "/api/admin/orders?status=lost", "", AdminList(svc, time.UTC, nil), uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

