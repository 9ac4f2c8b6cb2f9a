package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/capstudio-backend/internal/testdb"
	"github.com/angelmondragon/capstudio-backend/pkg/db"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn := testdb.Open(t)
	svc, err := NewService(NewRepository(conn), db.Wrap(conn))
	require.NoError(t, err)
	return svc
}

func customerReview(rating int) CreateReviewInput {
	return CreateReviewInput{
		AuthorName: "Park Jiwoo",
		Content:    "Great caps for our marathon crew",
		Rating:     rating,
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, nil)
	require.Error(t, err)
}

func TestCreateCustomerReviewIsPending(t *testing.T) {
	svc := newTestService(t)

	review, err := svc.Create(context.Background(), testdb.DefaultTenantID, customerReview(5))
	require.NoError(t, err)
	assert.Equal(t, enums.ReviewStatusPending, review.Status)
	assert.Equal(t, enums.ReviewAuthorCustomer, review.AuthorType)
	assert.Nil(t, review.ApprovedAt)
	assert.NotNil(t, review.Images)
}

func TestCreateAdminReviewIsApproved(t *testing.T) {
	svc := newTestService(t)
	input := customerReview(4)
	input.AuthorType = enums.ReviewAuthorAdmin

	review, err := svc.Create(context.Background(), testdb.DefaultTenantID, input)
	require.NoError(t, err)
	assert.Equal(t, enums.ReviewStatusApproved, review.Status)
	require.NotNil(t, review.ApprovedAt)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	input := CreateReviewInput{Rating: 6, Images: make([]types.ReviewImage, 6)}

	_, err := svc.Create(context.Background(), testdb.DefaultTenantID, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	details := pkgerrors.As(err).Details().(map[string]string)
	assert.Contains(t, details, "authorName")
	assert.Contains(t, details, "content")
	assert.Contains(t, details, "rating")
	assert.Contains(t, details, "images")
}

func TestPublicListShowsApprovedOnly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	pending, err := svc.Create(ctx, testdb.DefaultTenantID, customerReview(3))
	require.NoError(t, err)
	admin := customerReview(5)
	admin.AuthorType = enums.ReviewAuthorAdmin
	admin.SortOrder = 2
	_, err = svc.Create(ctx, testdb.DefaultTenantID, admin)
	require.NoError(t, err)

	featured := customerReview(5)
	featured.AuthorType = enums.ReviewAuthorAdmin
	featured.IsFeatured = true
	featured.SortOrder = 1
	_, err = svc.Create(ctx, testdb.DefaultTenantID, featured)
	require.NoError(t, err)

	public, err := svc.List(ctx, testdb.DefaultTenantID, ListQuery{Public: true})
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.True(t, public[0].IsFeatured)
	assert.Equal(t, 2, public[1].SortOrder)

	onlyFeatured, err := svc.List(ctx, testdb.DefaultTenantID, ListQuery{Public: true, FeaturedOnly: true})
	require.NoError(t, err)
	assert.Len(t, onlyFeatured, 1)

	pendingStatus := enums.ReviewStatusPending
	queue, err := svc.List(ctx, testdb.DefaultTenantID, ListQuery{Status: &pendingStatus})
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)

	_, err = svc.Get(ctx, testdb.DefaultTenantID, pending.ID, true)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestListLimitIsCapped(t *testing.T) {
	assert.Equal(t, DefaultListLimit, normalizeLimit(0))
	assert.Equal(t, MaxListLimit, normalizeLimit(500))
	assert.Equal(t, 7, normalizeLimit(7))
}

func TestUpdateApprovalStampsApprovedAt(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	review, err := svc.Create(ctx, testdb.DefaultTenantID, customerReview(5))
	require.NoError(t, err)

	approved := enums.ReviewStatusApproved
	memo := "checked photo rights"
	updated, err := svc.Update(ctx, testdb.DefaultTenantID, review.ID, UpdateReviewInput{
		Status:    &approved,
		AdminMemo: types.Nullable[string]{Set: true, Value: &memo},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.ReviewStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedAt)
	assert.Equal(t, memo, *updated.AdminMemo)

	public, err := svc.Get(ctx, testdb.DefaultTenantID, review.ID, true)
	require.NoError(t, err)
	assert.Nil(t, public.AdminMemo)
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	review, err := svc.Create(ctx, testdb.DefaultTenantID, customerReview(5))
	require.NoError(t, err)

	_, err = svc.Update(ctx, testdb.DefaultTenantID, review.ID, UpdateReviewInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestUpdateOtherTenantNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	review, err := svc.Create(ctx, testdb.DefaultTenantID, customerReview(5))
	require.NoError(t, err)

	featured := true
	_, err = svc.Update(ctx, uuid.New(), review.ID, UpdateReviewInput{IsFeatured: &featured})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	review, err := svc.Create(ctx, testdb.DefaultTenantID, customerReview(5))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testdb.DefaultTenantID, review.ID))
	_, err = svc.Get(ctx, testdb.DefaultTenantID, review.ID, false)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	err = svc.Delete(ctx, testdb.DefaultTenantID, review.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
