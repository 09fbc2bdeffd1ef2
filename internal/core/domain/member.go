package domain

// MemberRole is the role a member holds inside the association.
type MemberRole string

const (
	RolePresident MemberRole = "president"
	RoleTreasurer MemberRole = "tresorier"
	RoleCensor    MemberRole = "censeur"
	RoleMember    MemberRole = "membre"
)

// OfficerRoles are the roles allowed to view association-wide ledgers and stats.
var OfficerRoles = []MemberRole{RolePresident, RoleTreasurer, RoleCensor}

// Member represents an association member. The treasury core only reads its
// identity, role and active flag; membership management lives elsewhere.
type Member struct {
	MemberID     string     `json:"memberID"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Role         MemberRole `json:"role"`
	IsActive     bool       `json:"isActive"`
	PasswordHash string     `json:"-"`
	AuditFields
}

// HasRole reports whether the member holds one of the given roles.
func (m *Member) HasRole(roles ...MemberRole) bool {
	for _, r := range roles {
		if m.Role == r {
			return true
		}
	}
	return false
}
