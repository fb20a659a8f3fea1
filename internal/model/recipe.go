package model

import (
	"regexp"
	"time"
)

// MaxTitleLength caps recipe titles.
const MaxTitleLength = 255

// MaxLinkLength caps the optional external link.
const MaxLinkLength = 255

// pricePattern matches a fixed-point amount with at most three integer
// digits and two decimal places, mirroring the NUMERIC(5,2) column.
var pricePattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,2})?$`)

// Recipe is the central entity: a titled dish with preparation time, price,
// an optional external link and image, and many-to-many tag/ingredient
// associations.
type Recipe struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	TimeMinutes   int       `json:"time_minutes"`
	Price         string    `json:"price"` // decimal string, 2 places
	Link          string    `json:"link,omitempty"`
	ImagePath     *string   `json:"image,omitempty"`
	OwnerID       string    `json:"-"`
	TagIDs        []int64   `json:"tags"`
	IngredientIDs []int64   `json:"ingredients"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidPrice reports whether s is a well-formed price for storage.
func ValidPrice(s string) bool {
	return pricePattern.MatchString(s)
}
