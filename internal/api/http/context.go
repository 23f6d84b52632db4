package http

import (
	"context"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "user_claims"

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFrom returns the authenticated user's claims, if any.
func ClaimsFrom(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

func actorFrom(claims *security.UserClaims) domain.Actor {
	return domain.Actor{UserID: claims.UserID, Admin: claims.Admin}
}
