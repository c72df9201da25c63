package models

// PriceOption is one sellable occupancy/room configuration of a circuit.
// Type is the free-text label the room classifier works on.
type PriceOption struct {
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// Circuit is a sellable tour package. PriceOptions and Gallery are stored
// as JSON columns.
type Circuit struct {
	ID           int64         `json:"id"`
	Slug         string        `json:"slug"`
	Name         string        `json:"name"`
	Continent    string        `json:"continent"`
	Description  string        `json:"description,omitempty"`
	DurationDays int           `json:"duration_days,omitempty"`
	BasePrice    float64       `json:"base_price"`
	Currency     string        `json:"currency"`
	PriceOptions []PriceOption `json:"price_options"`
	Gallery      []string      `json:"gallery,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	UpdatedAt    string        `json:"updated_at,omitempty"`
}

// Bookable reports whether the circuit can take pre-bookings at all.
func (c Circuit) Bookable() bool {
	return len(c.PriceOptions) > 0
}
