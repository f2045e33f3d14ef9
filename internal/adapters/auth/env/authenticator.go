package env

import (
	"crypto/subtle"
	"os"

	"github.com/eballot/api/internal/core/ports"
)

// Authenticator checks credentials against ADMIN_USERNAME/ADMIN_PASSWORD.
// It is the default ports.Authenticator; deployments with a real identity
// provider replace it without touching election logic.
type Authenticator struct {
	username string
	password string
}

func NewAuthenticator() ports.Authenticator {
	return &Authenticator{
		username: os.Getenv("ADMIN_USERNAME"),
		password: os.Getenv("ADMIN_PASSWORD"),
	}
}

func (a *Authenticator) Verify(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}

	// Constant-time compares so the check does not leak prefix length.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}
