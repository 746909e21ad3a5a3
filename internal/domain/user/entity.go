package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleCandidate Role = "candidate"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleCandidate:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
