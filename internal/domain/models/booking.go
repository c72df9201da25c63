package models

// Pre-booking statuses. pending is initial; approved/rejected are the
// admin-driven terminals; cancelled is a separate terminal reachable from
// pending or approved. No transition ever leads back to pending.
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
)

// Passenger is one traveller slot on a pre-booking.
type Passenger struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	PassportNumber string `json:"passport_number,omitempty"`
}

// PreBooking is an agency-submitted reservation request.
type PreBooking struct {
	ID               int64       `json:"id"`
	AgencyID         int64       `json:"agency_id"`
	CircuitID        int64       `json:"circuit_id"`
	DepartureID      int64       `json:"departure_id"`
	RoomType         string      `json:"room_type"`
	NumAdults        int         `json:"num_adults"`
	NumChildren      int         `json:"num_children"`
	Passengers       []Passenger `json:"passengers"`
	Currency         string      `json:"currency"`
	PublicPrice      float64     `json:"public_price"`
	TotalPrice       float64     `json:"total_price"`
	AgencyCommission float64     `json:"agency_commission"`
	AgencyNotes      string      `json:"agency_notes,omitempty"`
	Status           string      `json:"status"`
	ApprovalNotes    string      `json:"approval_notes,omitempty"`
	RejectionReason  string      `json:"rejection_reason,omitempty"`
	ReviewedBy       int64       `json:"reviewed_by,omitempty"`
	ApprovedAt       string      `json:"approved_at,omitempty"`
	RejectedAt       string      `json:"rejected_at,omitempty"`
	CancelledAt      string      `json:"cancelled_at,omitempty"`
	CreatedAt        string      `json:"created_at,omitempty"`
	UpdatedAt        string      `json:"updated_at,omitempty"`
}
