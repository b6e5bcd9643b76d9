package testutil

import (
	"fmt"

	"github.com/google/uuid"
)

// RandomEmail returns a unique email address for test isolation.
func RandomEmail() string {
	return fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8])
}
