package reviews

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/api/middleware"
	"github.com/angelmondragon/capstudio-backend/api/responses"
	"github.com/angelmondragon/capstudio-backend/api/validators"
	internalreviews "github.com/angelmondragon/capstudio-backend/internal/reviews"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
)

type createReviewRequest struct {
	OrderID          *uuid.UUID          `json:"orderId"`
	AuthorName       string              `json:"authorName" validate:"notblank,max=50"`
	OrganizationName *string             `json:"organizationName"`
	Title            *string             `json:"title"`
	Content          string              `json:"content" validate:"notblank"`
	Rating           int                 `json:"rating" validate:"min=1,max=5"`
	Images           []types.ReviewImage `json:"images" validate:"max=5,dive"`
	IsFeatured       bool                `json:"isFeatured"`
	SortOrder        int                 `json:"sortOrder"`
}

type updateReviewRequest struct {
	Status           *string                `json:"status"`
	AdminMemo        types.Nullable[string] `json:"adminMemo"`
	IsFeatured       *bool                  `json:"isFeatured"`
	SortOrder        *int                   `json:"sortOrder"`
	Title            types.Nullable[string] `json:"title"`
	Content          *string                `json:"content"`
	Rating           *int                   `json:"rating"`
	Images           *[]types.ReviewImage   `json:"images"`
	OrganizationName types.Nullable[string] `json:"organizationName"`
}

// List returns approved reviews for the storefront gallery.
func List(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listReviews(svc, logg, w, r, true)
	}
}

// AdminList returns reviews in any moderation state, optionally filtered by status.
func AdminList(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listReviews(svc, logg, w, r, false)
	}
}

func listReviews(svc internalreviews.Service, logg *logger.Logger, w http.ResponseWriter, r *http.Request, public bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
		return
	}

	limit, err := validators.ParseQueryInt(r, "limit", internalreviews.DefaultListLimit, 1, internalreviews.MaxListLimit)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	featured, err := validators.ParseQueryBool(r, "featured", false)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	query := internalreviews.ListQuery{
		Public:       public,
		FeaturedOnly: featured,
		Limit:        limit,
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); !public && raw != "" && raw != "all" {
		status, err := enums.ParseReviewStatus(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
			return
		}
		query.Status = &status
	}

	list, err := svc.List(r.Context(), middleware.TenantIDFromContext(r.Context()), query)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, list)
}

// Get returns one approved review.
func Get(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		reviewID, err := validators.ParseUUIDParam(chi.URLParam(r, "reviewId"), "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.Get(r.Context(), middleware.TenantIDFromContext(r.Context()), reviewID, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

// Create accepts a customer review; it stays hidden until approved.
func Create(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return createReview(svc, logg, enums.ReviewAuthorCustomer)
}

// AdminCreate publishes a review written by staff without moderation.
func AdminCreate(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return createReview(svc, logg, enums.ReviewAuthorAdmin)
}

func createReview(svc internalreviews.Service, logg *logger.Logger, author enums.ReviewAuthorType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		var body createReviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalreviews.CreateReviewInput{
			OrderID:          body.OrderID,
			AuthorType:       author,
			AuthorName:       validators.SanitizeString(body.AuthorName, 50),
			OrganizationName: body.OrganizationName,
			Title:            body.Title,
			Content:          body.Content,
			Rating:           body.Rating,
			Images:           body.Images,
		}
		if author == enums.ReviewAuthorAdmin {
			input.IsFeatured = body.IsFeatured
			input.SortOrder = body.SortOrder
		}

		review, err := svc.Create(r.Context(), middleware.TenantIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if author == enums.ReviewAuthorCustomer {
			public := review.Public()
			review = &public
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

// AdminUpdate moderates or edits a review.
func AdminUpdate(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		reviewID, err := validators.ParseUUIDParam(chi.URLParam(r, "reviewId"), "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateReviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalreviews.UpdateReviewInput{
			AdminMemo:        body.AdminMemo,
			IsFeatured:       body.IsFeatured,
			SortOrder:        body.SortOrder,
			Title:            body.Title,
			Content:          body.Content,
			Rating:           body.Rating,
			Images:           body.Images,
			OrganizationName: body.OrganizationName,
		}
		if body.Status != nil {
			status, err := enums.ParseReviewStatus(strings.TrimSpace(*body.Status))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review status"))
				return
			}
			input.Status = &status
		}

		review, err := svc.Update(r.Context(), middleware.TenantIDFromContext(r.Context()), reviewID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

func AdminDelete(svc internalreviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reviews service unavailable"))
			return
		}

		reviewID, err := validators.ParseUUIDParam(chi.URLParam(r, "reviewId"), "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.TenantIDFromContext(r.Context()), reviewID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]uuid.UUID{"id": reviewID})
	}
}
