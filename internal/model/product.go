package model

// Valid product badges. An empty badge means none.
const (
	BadgeNew        = "New"
	BadgeSale       = "Sale"
	BadgeTrending   = "Trending"
	BadgeBestseller = "Bestseller"
)

// DefaultColor is applied when a product is created without any colors.
const DefaultColor = "#1a202c"

// Product represents a catalogue product as persisted in the adminProducts
// document. IDs are creation timestamps in milliseconds.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Colors        []string `json:"colors"`
	Badge         string   `json:"badge,omitempty"`
}

// ProductInput is the payload for product create and update operations.
// Numeric fields are coerced from their string form.
type ProductInput struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         Number   `json:"price"`
	OriginalPrice *Number  `json:"originalPrice"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Colors        []string `json:"colors"`
	Badge         string   `json:"badge"`
}

// ModelAsset is a 3D preview asset attached to a product. At most one asset
// exists per product id; replacing one re-uses the slot.
type ModelAsset struct {
	ProductID int64  `json:"productId"`
	ModelURL  string `json:"modelUrl"`
	FileName  string `json:"fileName"`
}
