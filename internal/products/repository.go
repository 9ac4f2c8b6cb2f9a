package products

import (
	"context"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the persistence surface the product service depends on.
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindWithAreas(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*models.Product, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ReplacePriceTiers(ctx context.Context, productID uuid.UUID, tiers []models.ProductPriceTier) error
	ListAreas(ctx context.Context, productID uuid.UUID, colorID *string) ([]models.CustomizableArea, error)
	UpsertArea(ctx context.Context, area *models.CustomizableArea) (*models.CustomizableArea, error)
	DeleteArea(ctx context.Context, productID, areaID uuid.UUID) error
}

var _ ProductRepository = (*Repository)(nil)

// Repository wires together product, price tier and customizable area persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) ProductRepository {
	return &Repository{db: tx}
}

func orderedTiers(db *gorm.DB) *gorm.DB {
	return db.Order("min_quantity ASC")
}

func enabledAreas(db *gorm.DB) *gorm.DB {
	return db.Where("is_enabled = ?", true).Order("sort_order ASC")
}

// FindByID loads the product with its price tiers.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("PriceTiers", orderedTiers).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindWithAreas loads the product with price tiers and its enabled customizable areas.
func (r *Repository) FindWithAreas(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("PriceTiers", orderedTiers).
		Preload("CustomizableAreas", enabledAreas).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a tenant's product by slug.
func (r *Repository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("PriceTiers", orderedTiers).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the given products with price tiers, keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Preload("PriceTiers", orderedTiers).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

// ListByTenant lists a tenant's products by sort order, active only unless includeInactive.
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, includeInactive bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("PriceTiers", orderedTiers).
		Where("tenant_id = ?", tenantID)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.Product
	err := query.
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// Create inserts a new product row without associations.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the product columns without touching associations.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID; tiers and areas cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", id).Delete(&models.ProductPriceTier{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", id).Delete(&models.CustomizableArea{}).Error; err != nil {
		return err
	}
	result := tx.Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplacePriceTiers replaces all price tiers for the product.
func (r *Repository) ReplacePriceTiers(ctx context.Context, productID uuid.UUID, tiers []models.ProductPriceTier) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductPriceTier{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	return tx.Create(&tiers).Error
}

// ListAreas returns the product's areas by sort order. A non-nil colorID narrows
// the result to that colour plus the areas shared by every colour.
func (r *Repository) ListAreas(ctx context.Context, productID uuid.UUID, colorID *string) ([]models.CustomizableArea, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if colorID != nil {
		query = query.Where("color_id = ? OR color_id IS NULL", *colorID)
	}
	var rows []models.CustomizableArea
	if err := query.Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindArea loads one area by id.
func (r *Repository) FindArea(ctx context.Context, areaID uuid.UUID) (*models.CustomizableArea, error) {
	var area models.CustomizableArea
	if err := r.db.WithContext(ctx).First(&area, "id = ?", areaID).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// UpsertArea inserts the area or updates the existing row sharing its
// product, view and colour. A nil colour matches only the shared area.
func (r *Repository) UpsertArea(ctx context.Context, area *models.CustomizableArea) (*models.CustomizableArea, error) {
	tx := r.db.WithContext(ctx)

	query := tx.Where("product_id = ? AND view_name = ?", area.ProductID, area.ViewName)
	if area.ColorID == nil {
		query = query.Where("color_id IS NULL")
	} else {
		query = query.Where("color_id = ?", *area.ColorID)
	}

	var existing models.CustomizableArea
	err := query.Limit(1).Find(&existing).Error
	if err != nil {
		return nil, err
	}

	if existing.ID == uuid.Nil {
		if area.ID == uuid.Nil {
			area.ID = uuid.New()
		}
		if err := tx.Create(area).Error; err != nil {
			return nil, err
		}
		return area, nil
	}

	area.ID = existing.ID
	area.CreatedAt = existing.CreatedAt
	if err := tx.Save(area).Error; err != nil {
		return nil, err
	}
	return area, nil
}

// DeleteArea removes an area belonging to the product.
func (r *Repository) DeleteArea(ctx context.Context, productID, areaID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", areaID, productID).
		Delete(&models.CustomizableArea{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
