package model

import "time"

// Tag labels recipes (e.g. "vegan", "dessert"). Owned by exactly one user;
// deleted when the owner is deleted.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
