package ids

import "github.com/google/uuid"

// New returns an identifier that has not been handed out before in this
// process. Random v4 UUIDs are used; only uniqueness is relied upon.
func New() string {
	return uuid.NewString()
}
