package domain

// Role classifies a marketplace account. The set is closed; anything else is
// rejected at the boundary.
type Role string

const (
	RoleProducer Role = "producer"
	RoleBuyer    Role = "buyer"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleProducer:
		return RoleProducer, nil
	case RoleBuyer:
		return RoleBuyer, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	return r == RoleProducer || r == RoleBuyer
}
