package models

// Role is the closed set of panel roles. Comparison goes through the
// rank table — never compare roles by string order or slice position.
type Role string

const (
	RoleUser         Role = "user"
	RoleNutritionist Role = "nutritionist"
	RoleAdmin        Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:         0,
	RoleNutritionist: 1,
	RoleAdmin:        2,
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r sits at or above min in the hierarchy.
// An unknown role never passes, regardless of min.
func (r Role) AtLeast(min Role) bool {
	rr, ok := roleRank[r]
	mr, ok2 := roleRank[min]
	if !ok || !ok2 {
		return false
	}
	return rr >= mr
}
