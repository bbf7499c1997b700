package reconciliation

import (
	"errors"

	"github.com/procurement/backend/internal/domain/shared"
)

// isNotFound reports whether err is the domain not-found error
func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
