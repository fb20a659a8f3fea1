package model

import "time"

// Ingredient is a recipe component. Same ownership rules as Tag.
type Ingredient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
