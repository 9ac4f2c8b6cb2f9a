package reviews

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
	internalreviews "github.com/angelmondragon/capstudio-backend/internal/reviews"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
)

type stubService struct {
	createInput  *internalreviews.CreateReviewInput
	updateInput  *internalreviews.UpdateReviewInput
	query        internalreviews.ListQuery
	approvedOnly bool
	err          error
}

func (s *stubService) Create(_ context.Context, _ uuid.UUID, input internalreviews.CreateReviewInput) (*internalreviews.ReviewDTO, error) {
	s.createInput = &input
	memo := "internal"
	return &internalreviews.ReviewDTO{AuthorName: input.AuthorName, AdminMemo: &memo}, s.err
}

func (s *stubService) List(_ context.Context, _ uuid.UUID, query internalreviews.ListQuery) ([]internalreviews.ReviewDTO, error) {
	s.query = query
	return []internalreviews.ReviewDTO{}, s.err
}

func (s *stubService) Get(_ context.Context, _ uuid.UUID, reviewID uuid.UUID, approvedOnly bool) (*internalreviews.ReviewDTO, error) {
	s.approvedOnly = approvedOnly
	return &internalreviews.ReviewDTO{ID: reviewID}, s.err
}

func (s *stubService) Update(_ context.Context, _ uuid.UUID, _ uuid.UUID, input internalreviews.UpdateReviewInput) (*internalreviews.ReviewDTO, error) {
	s.updateInput = &input
	return &internalreviews.ReviewDTO{}, s.err
}

func (s *stubService) Delete(_ context.Context, _ uuid.UUID, _ uuid.UUID) error {
	return s.err
}

func serve(method, pattern, target, body string, handler http.HandlerFunc) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithTenantID(r.Context(), uuid.New())))
		})
	})
	router.Method(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPublicListIgnoresStatusFilter(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodGet, "/api/reviews", "/api/reviews?status=pending&featured=true&limit=10", "", List(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.query.Public)
	assert.Nil(t, svc.query.Status)
	assert.True(t, svc.query.FeaturedOnly)
	assert.Equal(t, 10, svc.query.Limit)
}

func TestAdminListAppliesStatusFilter(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodGet, "/api/admin/reviews", "/api/admin/reviews?status=pending", "", AdminList(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.query.Public)
	require.NotNil(t, svc.query.Status)
	assert.Equal(t, enums.ReviewStatusPending, *svc.query.Status)
	assert.Equal(t, internalreviews.DefaultListLimit, svc.query.Limit)
}

func TestListRejectsLimitAboveMax(t *testing.T) {
	rec := serve(http.MethodGet, "/api/reviews", "/api/reviews?limit=101", "", List(&stubService{}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetIsApprovedOnly(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodGet, "/api/reviews/{reviewId}", "/api/reviews/"+uuid.NewString(), "", Get(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.approvedOnly)
}

func TestCustomerCreateHidesModerationFields(t *testing.T) {
	svc := &stubService{}
	body := `{"authorName":"김고객","content":"모자 품질이 좋아요","rating":5,"isFeatured":true}`
	rec := serve(http.MethodPost, "/api/reviews", "/api/reviews", body, Create(svc, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.createInput)
	assert.Equal(t, enums.ReviewAuthorCustomer, svc.createInput.AuthorType)
	assert.False(t, svc.createInput.IsFeatured)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	data := payload["data"].(map[string]any)
	_, hasMemo := data["adminMemo"]
	assert.False(t, hasMemo)
}

func TestAdminCreateKeepsFeatureFlags(t *testing.T) {
	svc := &stubService{}
	body := `{"authorName":"스튜디오","content":"단체 모자 납품 후기","rating":5,"isFeatured":true,"sortOrder":1}`
	rec := serve(http.MethodPost, "/api/admin/reviews", "/api/admin/reviews", body, AdminCreate(svc, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, enums.ReviewAuthorAdmin, svc.createInput.AuthorType)
	assert.True(t, svc.createInput.IsFeatured)
	assert.Equal(t, 1, svc.createInput.SortOrder)
}

func TestCreateValidatesRating(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodPost, "/api/reviews", "/api/reviews", `{"authorName":"a","content":"b","rating":6}`, Create(svc, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.createInput)
}

func TestAdminUpdateParsesStatus(t *testing.T) {
	svc := &stubService{}
	rec := serve(http.MethodPatch, "/api/admin/reviews/{reviewId}", "/api/admin/reviews/"+uuid.NewString(), `{"status":"approved","adminMemo":null}`, AdminUpdate(svc, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updateInput.Status)
	assert.Equal(t, enums.ReviewStatusApproved, *svc.updateInput.Status)
	assert.True(t, svc.updateInput.AdminMemo.IsNull())

	rec = serve(http.MethodPatch, "/api/admin/reviews/{reviewId}", "/api/admin/reviews/"+uuid.NewString(), `{"status":"hidden"}`, AdminUpdate(svc, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
