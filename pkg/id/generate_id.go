package id

import "github.com/google/uuid"

// New returns a random UUIDv4 string. Every persisted record carries one as
// its public identifier; numeric primary keys never leave the API.
func New() string {
	return uuid.NewString()
}
