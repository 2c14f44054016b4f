package content

import "strings"

// Banner is a homepage slide managed from the admin dashboard.
type Banner struct {
	ID        int    `json:"bannerId"`
	ImageURL  string `json:"imageUrl"`
	Link      string `json:"link,omitempty"`
	Alt       string `json:"alt,omitempty"`
	Position  int    `json:"position"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func (b Banner) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(b.ImageURL) == "" {
		errs["imageUrl"] = "imageUrl is required"
	}
	if b.Position < 0 {
		errs["position"] = "position must be >= 0"
	}
	return errs
}
