package product

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a candle in the catalog. Images and Colors are stored in their
// own tables and loaded alongside the product row.
type Product struct {
	ID          int             `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Images      []Image         `json:"images"`
	Colors      []Color         `json:"colors"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

type Image struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

// Color is a wax colour variant. ImageURL optionally points at a photo of
// that variant.
type Color struct {
	Name     string `json:"name"`
	Hex      string `json:"hex"`
	ImageURL string `json:"imageUrl,omitempty"`
}

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate returns every problem with the payload keyed by JSON field.
func (p Product) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if !p.Price.IsPositive() {
		errs["price"] = "price must be > 0"
	}
	if p.Stock < 0 {
		errs["stock"] = "stock must be >= 0"
	}
	if strings.TrimSpace(p.Category) == "" {
		errs["category"] = "category is required"
	}
	if ces := validateColors(p.Colors); len(ces) > 0 {
		for k, v := range ces {
			errs[k] = v
		}
	}
	return errs
}

func validateColors(colors []Color) map[string]string {
	errs := map[string]string{}
	for _, c := range colors {
		if strings.TrimSpace(c.Name) == "" {
			errs["colors"] = "colour name is required"
		}
		if !hexPattern.MatchString(c.Hex) {
			errs["colors"] = "colour hex must look like #a1b2c3"
		}
	}
	return errs
}

func validateImages(images []Image) map[string]string {
	errs := map[string]string{}
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			errs["images"] = "image url is required"
		}
	}
	return errs
}

// SampleCatalog seeds a development database.
func SampleCatalog() []Product {
	return []Product{
		{
			Name:        "Sandalwood Jar Candle",
			Description: "Soy wax, cotton wick, 40 hour burn",
			Price:       decimal.NewFromInt(549),
			Stock:       25,
			Category:    "Jar Candles",
			IsActive:    true,
			Images:      []Image{{URL: "/images/sandalwood-jar.jpg", Position: 0}},
			Colors:      []Color{{Name: "Ivory", Hex: "#fffff0"}},
		},
		{
			Name:        "Rose Pillar",
			Description: "Hand poured pillar with rose absolute",
			Price:       decimal.NewFromInt(450),
			Stock:       40,
			Category:    "Pillar Candles",
			IsActive:    true,
			Images:      []Image{{URL: "/images/rose-pillar.jpg", Position: 0}},
			Colors:      []Color{{Name: "Blush", Hex: "#f4c2c2"}, {Name: "Crimson", Hex: "#dc143c"}},
		},
		{
			Name:        "Lavender Tealights (12)",
			Description: "Pack of twelve lavender tealights",
			Price:       decimal.NewFromInt(299),
			Stock:       100,
			Category:    "Tealights",
			IsActive:    true,
			Images:      []Image{{URL: "/images/lavender-tealights.jpg", Position: 0}},
		},
	}
}
