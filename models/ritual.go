package models

// RitualDefinition is an entry in the static ritual catalog.
type RitualDefinition struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"durationMinutes"` // Typical duration.
	Icon            string  `json:"icon"`
	BasePrice       float64 `json:"basePrice"` // Used when the pandit has not set a price.
}

// RitualOffering is a catalog ritual as offered by one pandit, with the price
// that pandit charges for it.
type RitualOffering struct {
	RitualDefinition
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}
