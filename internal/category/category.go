package category

// Category groups candles on the storefront (jar, pillar, tealight...).
type Category struct {
	ID       int    `json:"categoryId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Position int    `json:"position"`
}
