// Package identity mints and checks the opaque per-device user id. Callers
// below the HTTP layer treat the id as an opaque string.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

const prefix = "user_"

// NewUserID returns a fresh random id such as
// "user_1b4e28ba-2fa1-41d2-883f-0016d3cca427".
func NewUserID() string {
	return prefix + uuid.NewString()
}

// Valid reports whether id has the shape produced by NewUserID.
func Valid(id string) bool {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil && len(rest) == 36
}
