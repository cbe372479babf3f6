package auth

import (
	"context"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh mints a fresh access token from a refresh token, re-checking
	// that the account still exists and is active.
	Refresh(ctx context.Context, req RefreshRequest) (RefreshResponse, error)
	GetProfile(ctx context.Context, actor user.Principal) (user.Response, error)
	UpdateProfile(ctx context.Context, actor user.Principal, req user.UpdateProfileRequest) (user.Response, error)

	// ResolvePrincipal loads the authorization principal for a user id. Used
	// by the auth middleware so every request carries a fresh role and
	// team-lead edge rather than trusting stale token claims.
	ResolvePrincipal(ctx context.Context, userID string) (user.Principal, error)
}
