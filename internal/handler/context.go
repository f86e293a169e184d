package handlers

import (
	"context"

	"healthcommunity/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the caller, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, _ := ctx.Value(identityKey).(*models.Identity)
	return identity
}
