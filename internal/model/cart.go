package model

// Sizes a cart line may select.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// ValidSize reports whether s is one of the selectable sizes.
func ValidSize(s string) bool {
	for _, size := range Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// CartItem is a single line in the shopper's cart. Lines are never merged:
// adding the same product, size and color twice produces two lines. Line IDs
// are creation timestamps in milliseconds and are not guaranteed unique
// within the same millisecond.
type CartItem struct {
	ID            int64   `json:"id"`
	ProductID     int64   `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
	Quantity      int     `json:"quantity"`
}

// CartLineInput is the payload for appending a line to the cart.
type CartLineInput struct {
	ProductID     int64  `json:"productId"`
	Name          string `json:"name"`
	Price         Number `json:"price"`
	Category      string `json:"category"`
	Image         string `json:"image"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	Quantity      int    `json:"quantity"`
}
