package models

// Departure statuses.
const (
	DepartureOpen   = "open"
	DepartureClosed = "closed"
)

// Departure is one dated instance of a circuit.
type Departure struct {
	ID             int64   `json:"id"`
	CircuitID      int64   `json:"circuit_id"`
	DepartureDate  string  `json:"departure_date"`
	ReturnDate     string  `json:"return_date"`
	RoomType       string  `json:"room_type,omitempty"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency,omitempty"`
	Status         string  `json:"status"`
	AvailableSpots int     `json:"available_spots"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}
