package ports

import "context"

// Authenticator is the pluggable credential check. The default adapter
// compares against environment credentials; production deployments swap in
// a real identity backend without touching election logic.
type Authenticator interface {
	Verify(username, password string) bool
}

type AuthService interface {
	// Login returns a signed admin token, or domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}
