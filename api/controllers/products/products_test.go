package products

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/internal/pricing"
	internalproducts "github.com/angelmondragon/capstudio-backend/internal/products"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
)

type stubService struct {
	tenantID        uuid.UUID
	includeInactive bool
	createInput     *internalproducts.CreateProductInput
	updateInput     *internalproducts.UpdateProductInput
	areaInput       *internalproducts.AreaInput
	quantity        int
	err             error
}

func (s *stubService) List(_ context.Context, tenantID uuid.UUID, includeInactive bool) ([]internalproducts.ProductDTO, error) {
	s.tenantID = tenantID
	s.includeInactive = includeInactive
	return []internalproducts.ProductDTO{}, s.err
}

func (s *stubService) Get(_ context.Context, productID uuid.UUID, _ bool) (*internalproducts.ProductDTO, error) {
	return &internalproducts.ProductDTO{ID: productID}, s.err
}

func (s *stubService) GetBySlug(_ context.Context, tenantID uuid.UUID, slug string) (*internalproducts.ProductDTO, error) {
	s.tenantID = tenantID
	return &internalproducts.ProductDTO{Slug: slug}, s.err
}

func (s *stubService) Create(_ context.Context, tenantID uuid.UUID, input internalproducts.CreateProductInput) (*internalproducts.ProductDTO, error) {
	s.tenantID = tenantID
	s.createInput = &input
	return &internalproducts.ProductDTO{Name: input.Name}, s.err
}

func (s *stubService) Update(_ context.Context, tenantID, _ uuid.UUID, input internalproducts.UpdateProductInput) (*internalproducts.ProductDTO, error) {
	s.tenantID = tenantID
	s.updateInput = &input
	return &internalproducts.ProductDTO{}, s.err
}

func (s *stubService) Delete(_ context.Context, tenantID, _ uuid.UUID) error {
	s.tenantID = tenantID
	return s.err
}

func (s *stubService) ListAreas(_ context.Context, _ uuid.UUID, _ *string) ([]internalproducts.AreaDTO, error) {
	return []internalproducts.AreaDTO{}, s.err
}

func (s *stubService) UpsertArea(_ context.Context, _ uuid.UUID, _ uuid.UUID, input internalproducts.AreaInput) (*internalproducts.AreaDTO, error) {
	s.areaInput = &input
	return &internalproducts.AreaDTO{}, s.err
}

func (s *stubService) DeleteArea(_ context.Context, _ uuid.UUID, _ uuid.UUID, _ uuid.UUID) error {
	return s.err
}

func (s *stubService) Quote(_ context.Context, _ uuid.UUID, quantity int) (*pricing.Quote, error) {
	s.quantity = quantity
	q := pricing.NewQuote(22400, quantity, []pricing.Tier{{MinQuantity: 10, UnitPrice: 20000}})
	return &q, s.err
}

func serve(method, pattern, target, body string, handler http.HandlerFunc, tenantID uuid.UUID) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithTenantID(r.Context(), tenantID)))
		})
	})
	router.Method(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListPassesTenantAndFlag(t *testing.T) {
	tenantID := uuid.New()
	svc := &stubService{}
	rec := serve(http.MethodGet, "/api/products", "/api/products?includeInactive=true", "", List(svc, nil), tenantID)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenantID, svc.tenantID)
	assert.True(t, svc.includeInactive)
}

func TestGetRejectsMalformedID(t *testing.T) {
	rec := serve(http.MethodGet, "/api/products/{productId}", "/api/products/abc", "", Get(&stubService{}, nil), uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNotFound(t *testing.T) {
	svc := &stubService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	rec := serve(http.MethodGet, "/api/products/{productId}", "/api/products/"+uuid.NewString(), "", Get(svc, nil), uuid.New())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteReturnsDiscount(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodGet, "/api/products/{productId}/quote", "/api/products/"+uuid.NewString()+"/quote?quantity=10", "", Quote(svc, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, svc.quantity)

	var payload struct {
		Success bool          `json:"success"`
		Data    pricing.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, 20000, payload.Data.UnitPrice)
	assert.Equal(t, 24000, payload.Data.DiscountAmount)
	assert.Equal(t, 11, payload.Data.DiscountRate)
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	rec := serve(http.MethodGet, "/api/products/{productId}/quote", "/api/products/"+uuid.NewString()+"/quote?quantity=0", "", Quote(&stubService{}, nil), uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateValidatesAndMaps(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodPost, "/api/admin/products", "/api/admin/products", `{"name":"x"}`, Create(svc, nil), uuid.New())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.createInput)

	body := `{
		"name": " 볼캡 ",
		"slug": "Ball-Cap",
		"category": "hat",
		"basePrice": 22400,
		"priceTiers": [{"minQuantity": 10, "unitPrice": 20000}],
		"customizableAreas": [{"viewName": "front", "displayName": "정면", "zoneX": 10, "zoneY": 10, "zoneWidth": 50, "zoneHeight": 30}]
	}`
	tenantID := uuid.New()
	rec = serve(http.MethodPost, "/api/admin/products", "/api/admin/products", body, Create(svc, nil), tenantID)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.createInput)
	assert.Equal(t, tenantID, svc.tenantID)
	assert.Equal(t, "볼캡", svc.createInput.Name)
	assert.Equal(t, "ball-cap", svc.createInput.Slug)
	require.Len(t, svc.createInput.CustomizableAreas, 1)
	assert.Equal(t, "정면", svc.createInput.CustomizableAreas[0].DisplayName)
}

func TestUpdateDistinguishesNullFromAbsent(t *testing.T) {
	svc := &stubService{}
	body := `{"description": null, "basePrice": 25000}`
	rec := serve(http.MethodPatch, "/api/admin/products/{productId}", "/api/admin/products/"+uuid.NewString(), body, Update(svc, nil), uuid.New())

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updateInput)
	assert.True(t, svc.updateInput.Description.IsNull())
	assert.False(t, svc.updateInput.AdminMessage.Set)
	require.NotNil(t, svc.updateInput.BasePrice)
	assert.Equal(t, 25000, *svc.updateInput.BasePrice)
}

func TestUpsertAreaRequiresDisplayName(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodPut, "/api/admin/products/{productId}/areas", "/api/admin/products/"+uuid.NewString()+"/areas", `{"viewName":"front"}`, UpsertArea(svc, nil), uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.areaInput)
}
