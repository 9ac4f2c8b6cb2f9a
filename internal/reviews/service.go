package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
	MaxImages        = 5
)

// Service exposes the review gallery and its moderation.
type Service interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	List(ctx context.Context, tenantID uuid.UUID, query ListQuery) ([]ReviewDTO, error)
	Get(ctx context.Context, tenantID, reviewID uuid.UUID, approvedOnly bool) (*ReviewDTO, error)
	Update(ctx context.Context, tenantID, reviewID uuid.UUID, input UpdateReviewInput) (*ReviewDTO, error)
	Delete(ctx context.Context, tenantID, reviewID uuid.UUID) error
}

// CreateReviewInput is a new review from a customer or an admin.
type CreateReviewInput struct {
	OrderID          *uuid.UUID
	AuthorType       enums.ReviewAuthorType
	AuthorName       string
	OrganizationName *string
	Title            *string
	Content          string
	Rating           int
	Images           []types.ReviewImage
	IsFeatured       bool
	SortOrder        int
}

// ListQuery selects reviews. Public callers always get approved reviews only.
type ListQuery struct {
	Public       bool
	Status       *enums.ReviewStatus
	FeaturedOnly bool
	Limit        int
}

// UpdateReviewInput holds moderation and content edits; nil fields are left unchanged.
type UpdateReviewInput struct {
	Status           *enums.ReviewStatus
	AdminMemo        types.Nullable[string]
	IsFeatured       *bool
	SortOrder        *int
	Title            types.Nullable[string]
	Content          *string
	Rating           *int
	Images           *[]types.ReviewImage
	OrganizationName types.Nullable[string]
}

func (in UpdateReviewInput) isEmpty() bool {
	return in.Status == nil && !in.AdminMemo.Set && in.IsFeatured == nil && in.SortOrder == nil &&
		!in.Title.Set && in.Content == nil && in.Rating == nil && in.Images == nil && !in.OrganizationName.Set
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo ReviewRepository
	tx   txRunner
	now  func() time.Time
}

// NewService constructs a review service.
func NewService(repo ReviewRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

// Create stores a review. Admin-authored reviews skip moderation.
func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if input.AuthorType == "" {
		input.AuthorType = enums.ReviewAuthorCustomer
	}
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:               uuid.New(),
		TenantID:         tenantID,
		OrderID:          input.OrderID,
		AuthorType:       input.AuthorType,
		AuthorName:       strings.TrimSpace(input.AuthorName),
		OrganizationName: trimOptional(input.OrganizationName),
		Title:            trimOptional(input.Title),
		Content:          strings.TrimSpace(input.Content),
		Rating:           input.Rating,
		Images:           input.Images,
		Status:           enums.ReviewStatusPending,
		IsFeatured:       input.IsFeatured,
		SortOrder:        input.SortOrder,
	}
	if review.Images == nil {
		review.Images = []types.ReviewImage{}
	}
	if input.AuthorType == enums.ReviewAuthorAdmin {
		approvedAt := s.now().UTC()
		review.Status = enums.ReviewStatusApproved
		review.ApprovedAt = &approvedAt
	}

	if _, err := s.repo.Create(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert review")
	}
	return NewReviewDTO(review), nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, query ListQuery) ([]ReviewDTO, error) {
	filter := ListFilter{
		Status:       query.Status,
		FeaturedOnly: query.FeaturedOnly,
		Limit:        normalizeLimit(query.Limit),
	}
	if query.Public {
		approved := enums.ReviewStatusApproved
		filter.Status = &approved
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid review status")
	}

	rows, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dto := NewReviewDTO(&rows[i])
		if query.Public {
			out = append(out, dto.Public())
			continue
		}
		out = append(out, *dto)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, tenantID, reviewID uuid.UUID, approvedOnly bool) (*ReviewDTO, error) {
	review, err := s.load(ctx, s.repo, tenantID, reviewID)
	if err != nil {
		return nil, err
	}
	if approvedOnly {
		if review.Status != enums.ReviewStatusApproved {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		public := NewReviewDTO(review).Public()
		return &public, nil
	}
	return NewReviewDTO(review), nil
}

// Update applies a partial edit. Moving a review to approved stamps approved_at.
func (s *service) Update(ctx context.Context, tenantID, reviewID uuid.UUID, input UpdateReviewInput) (*ReviewDTO, error) {
	if input.isEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	var updated *models.Review
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		review, err := s.load(ctx, txRepo, tenantID, reviewID)
		if err != nil {
			return err
		}
		s.apply(review, input)
		if err := txRepo.Save(ctx, review); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update review")
		}
		updated = review
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewReviewDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, tenantID, reviewID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := s.load(ctx, txRepo, tenantID, reviewID); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, reviewID); err != nil {
			return mapLookupError(err)
		}
		return nil
	})
}

func (s *service) load(ctx context.Context, repo ReviewRepository, tenantID, reviewID uuid.UUID) (*models.Review, error) {
	if reviewID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id required")
	}
	review, err := repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if review.TenantID != tenantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return review, nil
}

func (s *service) apply(review *models.Review, input UpdateReviewInput) {
	if input.Status != nil {
		if *input.Status == enums.ReviewStatusApproved && review.Status != enums.ReviewStatusApproved {
			approvedAt := s.now().UTC()
			review.ApprovedAt = &approvedAt
		}
		review.Status = *input.Status
	}
	if input.AdminMemo.Set {
		review.AdminMemo = trimOptional(input.AdminMemo.Value)
	}
	if input.IsFeatured != nil {
		review.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		review.SortOrder = *input.SortOrder
	}
	if input.Title.Set {
		review.Title = trimOptional(input.Title.Value)
	}
	if input.Content != nil {
		review.Content = strings.TrimSpace(*input.Content)
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Images != nil {
		review.Images = *input.Images
	}
	if input.OrganizationName.Set {
		review.OrganizationName = trimOptional(input.OrganizationName.Value)
	}
}

func validateCreate(input CreateReviewInput) error {
	details := map[string]string{}
	if !input.AuthorType.IsValid() {
		details["authorType"] = "must be admin or customer"
	}
	if strings.TrimSpace(input.AuthorName) == "" {
		details["authorName"] = "required"
	}
	if strings.TrimSpace(input.Content) == "" {
		details["content"] = "required"
	}
	if input.Rating < 1 || input.Rating > 5 {
		details["rating"] = "must be between 1 and 5"
	}
	if len(input.Images) > MaxImages {
		details["images"] = fmt.Sprintf("at most %d images", MaxImages)
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid review").WithDetails(details)
	}
	return nil
}

func validateUpdate(input UpdateReviewInput) error {
	details := map[string]string{}
	if input.Status != nil && !input.Status.IsValid() {
		details["status"] = "must be pending, approved or rejected"
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		details["content"] = "must not be empty"
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		details["rating"] = "must be between 1 and 5"
	}
	if input.Images != nil && len(*input.Images) > MaxImages {
		details["images"] = fmt.Sprintf("at most %d images", MaxImages)
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid review update").WithDetails(details)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
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

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
}
