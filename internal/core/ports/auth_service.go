package ports

import (
	"context"

	"github.com/rolodex/contacts-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
