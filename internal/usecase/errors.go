package usecase

import (
	"errors"

	"jobdesk/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// Principal is the authenticated identity attached to every request by the
// auth middleware.
type Principal struct {
	ID   uuid.UUID
	Name string
	Role user.Role
}

// canManage reports whether p may see or mutate the candidate list of a
// job owned by postedBy.
func (p Principal) canManage(postedBy uuid.UUID) bool {
	return p.ID == postedBy || p.Role == user.RoleAdmin
}
