package models

// Agency statuses. pending -> active on admin approval; active <-> suspended.
const (
	AgencyPending   = "pending"
	AgencyActive    = "active"
	AgencySuspended = "suspended"
)

// Agency is a partner travel-agency tenant account.
type Agency struct {
	ID             int64   `json:"id"`
	CompanyName    string  `json:"company_name"`
	LegalName      string  `json:"legal_name"`
	TaxID          string  `json:"tax_id"`
	BillingAddress string  `json:"billing_address"`
	ContactPerson  string  `json:"contact_person"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commission_rate"`
	Status         string  `json:"status"`
	AdminNotes     string  `json:"admin_notes,omitempty"`
	ApprovedAt     string  `json:"approved_at,omitempty"`
	ApprovedBy     int64   `json:"approved_by,omitempty"`
	SuspendedAt    string  `json:"suspended_at,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// AgencyStats enriches a directory row with booking counts and the
// commission the agency has earned on approved bookings.
type AgencyStats struct {
	Agency
	TotalBookings   int     `json:"total_bookings"`
	PendingBookings int     `json:"pending_bookings"`
	TotalCommission float64 `json:"total_commission"`
}

// AgencyUpdate supports PATCH-style updates via key presence. Nil fields
// are left untouched. CommissionRate is only settable through the admin
// path; the agency self-update handler never populates it.
type AgencyUpdate struct {
	CompanyName    *string  `json:"company_name"`
	LegalName      *string  `json:"legal_name"`
	TaxID          *string  `json:"tax_id"`
	BillingAddress *string  `json:"billing_address"`
	ContactPerson  *string  `json:"contact_person"`
	Phone          *string  `json:"phone"`
	AdminNotes     *string  `json:"admin_notes"`
	CommissionRate *float64 `json:"commission_rate"`
}
