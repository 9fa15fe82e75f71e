package middleware

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

// CurrentUser rebuilds the authenticated user from verified token
// claims. Every handler goes through this instead of reading claims
// piecemeal, so a malformed token fails in one place.
func CurrentUser(ctx context.Context) (user.User, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.User{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return user.User{}, fmt.Errorf("role claim is missing or invalid")
	}

	usr := user.User{
		ID:   userID,
		Role: user.Role(roleStr),
	}

	if email, ok := claims["email"].(string); ok {
		usr.Email = email
	}
	if username, ok := claims["username"].(string); ok {
		usr.Username = username
	}
	if fullName, ok := claims["full_name"].(string); ok && fullName != "" {
		usr.FullName = &fullName
	}

	return usr, nil
}
