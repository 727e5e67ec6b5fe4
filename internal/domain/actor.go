package domain

import "github.com/google/uuid"

// Role is the platform role carried in the access token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleBusiness, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor is the owner of the given business.
func (a Actor) Owns(b *Business) bool {
	return b != nil && a.UserID != uuid.Nil && b.OwnerID == a.UserID
}

// CanManage reports whether the actor may change operational data of the business.
func (a Actor) CanManage(b *Business) bool {
	return a.IsAdmin() || a.Owns(b)
}
