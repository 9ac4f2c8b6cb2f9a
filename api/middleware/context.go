package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
)

type (
	actorKey  struct{}
	tenantKey struct{}
)

// Actor is the authenticated caller behind an admin request.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

func (a Actor) Is(roles ...enums.Role) bool {
	for _, role := range roles {
		if a.Role == role {
			return true
		}
	}
	return false
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext reports false for anonymous storefront requests.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// TenantIDFromContext returns uuid.Nil when no tenant was resolved.
func TenantIDFromContext(ctx context.Context) uuid.UUID {
	tenantID, _ := ctx.Value(tenantKey{}).(uuid.UUID)
	return tenantID
}
