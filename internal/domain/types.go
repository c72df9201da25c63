package domain

// ID is used across domain entities.
type ID = int64

// Roles known to the portal. Agencies create and read their own bookings;
// the back-office roles review them.
const (
	RoleAgency     = "agency"
	RoleOperator   = "operator"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Principal is the acting identity, resolved once per request by the auth
// middleware and passed explicitly into every service call. AgencyID is zero
// for back-office users.
type Principal struct {
	UserID   int64  `json:"user_id"`
	AgencyID int64  `json:"agency_id"`
	Role     string `json:"role"`
}

func (p Principal) IsBackOffice() bool {
	switch p.Role {
	case RoleAdmin, RoleSuperadmin, RoleOperator:
		return true
	default:
		return false
	}
}

func (p Principal) IsAgency() bool {
	return p.Role == RoleAgency
}
