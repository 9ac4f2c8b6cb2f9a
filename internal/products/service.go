package products

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/angelmondragon/capstudio-backend/internal/pricing"
	"github.com/angelmondragon/capstudio-backend/pkg/db"
	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Service exposes catalogue operations for storefront and admin callers.
type Service interface {
	List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]ProductDTO, error)
	Get(ctx context.Context, productID uuid.UUID, withAreas bool) (*ProductDTO, error)
	GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*ProductDTO, error)
	Create(ctx context.Context, tenantID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, tenantID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, tenantID, productID uuid.UUID) error
	ListAreas(ctx context.Context, productID uuid.UUID, colorID *string) ([]AreaDTO, error)
	UpsertArea(ctx context.Context, tenantID, productID uuid.UUID, input AreaInput) (*AreaDTO, error)
	DeleteArea(ctx context.Context, tenantID, productID, areaID uuid.UUID) error
	Quote(ctx context.Context, productID uuid.UUID, quantity int) (*pricing.Quote, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name              string
	Slug              string
	Description       *string
	Category          enums.ProductCategory
	BasePrice         int
	PriceTiers        []pricing.Tier
	Images            []types.ProductImage
	Variants          []types.ProductVariant
	DetailImageURL    *string
	AdminMessage      *string
	IsActive          *bool
	SortOrder         int
	CustomizableAreas []AreaInput
}

// UpdateProductInput holds optional mutation values for a product. Nullable
// fields distinguish "leave unchanged" from an explicit clear.
type UpdateProductInput struct {
	Name           *string
	Slug           *string
	Description    types.Nullable[string]
	Category       *enums.ProductCategory
	BasePrice      *int
	PriceTiers     types.Nullable[[]pricing.Tier]
	Images         *[]types.ProductImage
	Variants       *[]types.ProductVariant
	DetailImageURL types.Nullable[string]
	AdminMessage   types.Nullable[string]
	IsActive       *bool
	SortOrder      *int
}

// AreaInput describes a customizable area to create or replace.
type AreaInput struct {
	ColorID     *string
	ViewName    enums.ProductView
	DisplayName string
	ZoneX       float64
	ZoneY       float64
	ZoneWidth   float64
	ZoneHeight  float64
	ImageURL    *string
	IsEnabled   *bool
	SortOrder   *int
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo ProductRepository
	tx   txRunner
}

// NewService constructs a product service instance.
func NewService(repo ProductRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]ProductDTO, error) {
	rows, err := s.repo.ListByTenant(ctx, tenantID, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, productID uuid.UUID, withAreas bool) (*ProductDTO, error) {
	var (
		product *models.Product
		err     error
	)
	if withAreas {
		product, err = s.repo.FindWithAreas(ctx, productID)
	} else {
		product, err = s.repo.FindByID(ctx, productID)
	}
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	dto := NewProductDTO(product)
	if withAreas && dto.CustomizableAreas == nil {
		dto.CustomizableAreas = []AreaDTO{}
	}
	return dto, nil
}

func (s *service) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug required")
	}
	product, err := s.repo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	return NewProductDTO(product), nil
}

// Create inserts the product, its price tiers and initial areas in one transaction.
func (s *service) Create(ctx context.Context, tenantID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if input.Category == "" {
		input.Category = enums.ProductCategoryHat
	}
	if err := validateCreate(input); err != nil {
		return nil, err
	}
	for _, area := range input.CustomizableAreas {
		if err := validateArea(area); err != nil {
			return nil, err
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	var productID uuid.UUID
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			ID:             uuid.New(),
			TenantID:       tenantID,
			Name:           strings.TrimSpace(input.Name),
			Slug:           strings.TrimSpace(input.Slug),
			Description:    input.Description,
			Category:       input.Category,
			BasePrice:      input.BasePrice,
			Images:         input.Images,
			Variants:       input.Variants,
			DetailImageURL: input.DetailImageURL,
			AdminMessage:   input.AdminMessage,
			IsActive:       isActive,
			SortOrder:      input.SortOrder,
		}
		if product.Images == nil {
			product.Images = []types.ProductImage{}
		}
		if product.Variants == nil {
			product.Variants = []types.ProductVariant{}
		}

		created, err := txRepo.Create(ctx, product)
		if err != nil {
			return mapWriteError(err, "db: insert product")
		}
		productID = created.ID

		if err := txRepo.ReplacePriceTiers(ctx, created.ID, tierModels(created.ID, input.PriceTiers)); err != nil {
			return mapWriteError(err, "db: insert price tiers")
		}

		for idx, area := range input.CustomizableAreas {
			if area.SortOrder == nil {
				order := idx
				area.SortOrder = &order
			}
			if _, err := txRepo.UpsertArea(ctx, areaModel(created.ID, area)); err != nil {
				return mapWriteError(err, "db: insert customizable area")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, productID, len(input.CustomizableAreas) > 0)
}

// Update applies a partial update; tiers are replaced when present and cleared when null.
func (s *service) Update(ctx context.Context, tenantID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			return mapLookupError(err, "product not found")
		}
		if product.TenantID != tenantID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}

		applyUpdateToProduct(product, input)
		if _, err := txRepo.Update(ctx, product); err != nil {
			return mapWriteError(err, "db: update product")
		}

		if input.PriceTiers.Set {
			var tiers []pricing.Tier
			if input.PriceTiers.Value != nil {
				tiers = *input.PriceTiers.Value
			}
			if err := txRepo.ReplacePriceTiers(ctx, productID, tierModels(productID, tiers)); err != nil {
				return mapWriteError(err, "db: replace price tiers")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, productID, false)
}

func (s *service) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := s.ensureOwned(ctx, txRepo, tenantID, productID); err != nil {
			return err
		}
		if err := txRepo.Delete(ctx, productID); err != nil {
			return mapLookupError(err, "product not found")
		}
		return nil
	})
}

func (s *service) ListAreas(ctx context.Context, productID uuid.UUID, colorID *string) ([]AreaDTO, error) {
	rows, err := s.repo.ListAreas(ctx, productID, colorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customizable areas")
	}
	return NewAreaDTOs(rows), nil
}

func (s *service) UpsertArea(ctx context.Context, tenantID, productID uuid.UUID, input AreaInput) (*AreaDTO, error) {
	if err := validateArea(input); err != nil {
		return nil, err
	}

	var saved *models.CustomizableArea
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := s.ensureOwned(ctx, txRepo, tenantID, productID); err != nil {
			return err
		}
		area, err := txRepo.UpsertArea(ctx, areaModel(productID, input))
		if err != nil {
			return mapWriteError(err, "db: upsert customizable area")
		}
		saved = area
		return nil
	})
	if err != nil {
		return nil, err
	}
	dto := NewAreaDTO(*saved)
	return &dto, nil
}

func (s *service) DeleteArea(ctx context.Context, tenantID, productID, areaID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := s.ensureOwned(ctx, txRepo, tenantID, productID); err != nil {
			return err
		}
		if err := txRepo.DeleteArea(ctx, productID, areaID); err != nil {
			return mapLookupError(err, "customizable area not found")
		}
		return nil
	})
}

// Quote prices quantity units of the product against its tier table.
func (s *service) Quote(ctx context.Context, productID uuid.UUID, quantity int) (*pricing.Quote, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, mapLookupError(err, "product not found")
	}
	quote := pricing.NewQuote(product.BasePrice, quantity, pricing.FromModels(product.PriceTiers))
	return &quote, nil
}

func (s *service) ensureOwned(ctx context.Context, repo ProductRepository, tenantID, productID uuid.UUID) error {
	product, err := repo.FindByID(ctx, productID)
	if err != nil {
		return mapLookupError(err, "product not found")
	}
	if product.TenantID != tenantID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		product.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Description.Set {
		product.Description = input.Description.Value
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.BasePrice != nil {
		product.BasePrice = *input.BasePrice
	}
	if input.Images != nil {
		product.Images = append([]types.ProductImage{}, (*input.Images)...)
	}
	if input.Variants != nil {
		product.Variants = append([]types.ProductVariant{}, (*input.Variants)...)
	}
	if input.DetailImageURL.Set {
		product.DetailImageURL = input.DetailImageURL.Value
	}
	if input.AdminMessage.Set {
		product.AdminMessage = input.AdminMessage.Value
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		product.SortOrder = *input.SortOrder
	}
	product.PriceTiers = nil
	product.CustomizableAreas = nil
}

func validateCreate(input CreateProductInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if !slugPattern.MatchString(strings.TrimSpace(input.Slug)) {
		details["slug"] = "lowercase letters, digits and hyphens required"
	}
	if input.BasePrice < 0 {
		details["basePrice"] = "must be zero or greater"
	}
	if !input.Category.IsValid() {
		details["category"] = "unsupported category"
	}
	if err := pricing.ValidateTiers(input.PriceTiers); err != nil {
		details["priceTiers"] = err.Error()
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(details)
	}
	return nil
}

func validateUpdate(input UpdateProductInput) error {
	details := map[string]string{}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		details["name"] = "cannot be empty"
	}
	if input.Slug != nil && !slugPattern.MatchString(strings.TrimSpace(*input.Slug)) {
		details["slug"] = "lowercase letters, digits and hyphens required"
	}
	if input.BasePrice != nil && *input.BasePrice < 0 {
		details["basePrice"] = "must be zero or greater"
	}
	if input.Category != nil && !input.Category.IsValid() {
		details["category"] = "unsupported category"
	}
	if input.PriceTiers.Value != nil {
		if err := pricing.ValidateTiers(*input.PriceTiers.Value); err != nil {
			details["priceTiers"] = err.Error()
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product").WithDetails(details)
	}
	return nil
}

func validateArea(input AreaInput) error {
	details := map[string]string{}
	if !input.ViewName.IsValid() {
		details["viewName"] = "required"
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		details["displayName"] = "required"
	}
	if input.ZoneX < 0 || input.ZoneY < 0 || input.ZoneWidth < 0 || input.ZoneHeight < 0 {
		details["zone"] = "zone values must be non-negative percentages"
	}
	if input.ZoneX+input.ZoneWidth > 100 || input.ZoneY+input.ZoneHeight > 100 {
		details["zone"] = "zone must fit within the view"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "viewName, displayName are required").WithDetails(details)
	}
	return nil
}

func tierModels(productID uuid.UUID, tiers []pricing.Tier) []models.ProductPriceTier {
	out := make([]models.ProductPriceTier, 0, len(tiers))
	for _, tier := range pricing.SortTiers(tiers) {
		out = append(out, models.ProductPriceTier{
			ID:          uuid.New(),
			ProductID:   productID,
			MinQuantity: tier.MinQuantity,
			UnitPrice:   tier.UnitPrice,
		})
	}
	return out
}

func areaModel(productID uuid.UUID, input AreaInput) *models.CustomizableArea {
	isEnabled := true
	if input.IsEnabled != nil {
		isEnabled = *input.IsEnabled
	}
	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}
	var colorID *string
	if input.ColorID != nil && strings.TrimSpace(*input.ColorID) != "" {
		trimmed := strings.TrimSpace(*input.ColorID)
		colorID = &trimmed
	}
	return &models.CustomizableArea{
		ProductID:   productID,
		ColorID:     colorID,
		ViewName:    input.ViewName,
		DisplayName: strings.TrimSpace(input.DisplayName),
		ZoneX:       input.ZoneX,
		ZoneY:       input.ZoneY,
		ZoneWidth:   input.ZoneWidth,
		ZoneHeight:  input.ZoneHeight,
		ImageURL:    input.ImageURL,
		IsEnabled:   isEnabled,
		SortOrder:   sortOrder,
	}
}

func mapLookupError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
}

func mapWriteError(err error, message string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product slug already exists for this tenant")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
