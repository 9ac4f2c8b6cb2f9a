package tenants

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/angelmondragon/capstudio-backend/pkg/db"
	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
	"github.com/angelmondragon/capstudio-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type tenantRepository interface {
	WithTx(tx *gorm.DB) *Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	List(ctx context.Context) ([]models.Tenant, error)
}

// Service exposes tenant lookup and settings management.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*TenantDTO, error)
	GetBySlug(ctx context.Context, slug string) (*TenantDTO, error)
	List(ctx context.Context) ([]SummaryDTO, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, patch types.TenantSettingsOverrides) (*TenantDTO, error)
}

type service struct {
	repo     tenantRepository
	dbClient *db.Client
}

// NewService builds a tenant service.
func NewService(repo tenantRepository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenant repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(tenant), nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*TenantDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant slug required")
	}
	tenant, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, mapLookupError(err)
	}
	return FromModel(tenant), nil
}

func (s *service) List(ctx context.Context) ([]SummaryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tenants")
	}
	out := make([]SummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSummary(row))
	}
	return out, nil
}

// UpdateSettings merges patch into the stored document inside a transaction.
func (s *service) UpdateSettings(ctx context.Context, id uuid.UUID, patch types.TenantSettingsOverrides) (*TenantDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if err := validateOverrides(patch); err != nil {
		return nil, err
	}

	var updated *models.Tenant
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		current, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return mapLookupError(err)
		}
		merged := ApplyOverrides(current.Settings, patch)
		if err := txRepo.UpdateSettings(ctx, id, merged); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tenant settings")
		}
		current.Settings = merged
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func validateOverrides(patch types.TenantSettingsOverrides) error {
	details := map[string]string{}
	if patch.BasePrice != nil && *patch.BasePrice < 0 {
		details["basePrice"] = "must be zero or greater"
	}
	if patch.ShippingFreeThreshold != nil && *patch.ShippingFreeThreshold < 0 {
		details["shippingFreeThreshold"] = "must be zero or greater"
	}
	if patch.ShippingCost != nil && *patch.ShippingCost < 0 {
		details["shippingCost"] = "must be zero or greater"
	}
	if patch.Currency != nil && !patch.Currency.IsValid() {
		details["currency"] = "unsupported currency"
	}
	for idx, color := range patch.Colors {
		if strings.TrimSpace(color.ID) == "" || !hexColorPattern.MatchString(color.Hex) {
			details[fmt.Sprintf("colors[%d]", idx)] = "id and #RRGGBB hex required"
		}
		for view := range color.Views {
			if !view.IsValid() {
				details[fmt.Sprintf("colors[%d].views", idx)] = fmt.Sprintf("unknown view %q", view)
			}
		}
	}
	for view, zone := range patch.SafeZones {
		if !view.IsValid() {
			details["safeZones"] = fmt.Sprintf("unknown view %q", view)
			continue
		}
		if zone.Width <= 0 || zone.Height <= 0 || zone.X < 0 || zone.Y < 0 || zone.X+zone.Width > 100 || zone.Y+zone.Height > 100 {
			details["safeZones."+string(view)] = "zone must fit within 0-100 percent"
		}
	}
	for idx, entry := range patch.PrintColorPalette {
		if !hexColorPattern.MatchString(strings.TrimSpace(entry.Hex)) {
			details[fmt.Sprintf("printColorPalette[%d]", idx)] = "#RRGGBB hex required"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid tenant settings").WithDetails(details)
	}
	return nil
}

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tenant not found")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tenant")
}
