package auth

import (
	"context"

	"github.com/shivam041/riseapp/internal"
)

// Provider is one tier of the two-tier auth strategy. The remote
// implementation returns the backend-issued token alongside the user;
// the local mock has no token of its own and returns "".
type Provider interface {
	Register(ctx context.Context, email, password, name string) (*internal.User, string, error)
	Login(ctx context.Context, email, password string) (*internal.User, string, error)
	Logout(ctx context.Context, token string) error
}
