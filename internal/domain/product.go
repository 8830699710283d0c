package domain

// Product represents a catalog product. Prices are in centavos.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         int64            `json:"price"`
	Description   string           `json:"description"`
	Images        []string         `json:"images"`
	Badges        []string         `json:"badges,omitempty"`
	Variations    []VariationGroup `json:"variations,omitempty"`
	AverageRating float64          `json:"average_rating,omitempty"`
	ReviewCount   int              `json:"review_count,omitempty"`
}

// VariationGroup is a named set of selectable options (e.g. Color: Black, White).
type VariationGroup struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}
