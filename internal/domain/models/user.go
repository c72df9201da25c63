package models

// User is a portal login. Agency users carry the owning AgencyID;
// back-office users have it zero.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	AgencyID int64  `json:"agency_id,omitempty"`
	Status   string `json:"status"`
}
