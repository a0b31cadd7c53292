package domain

import (
	"errors"
	"time"
)

// Categories the kitchen serves. Menu item writes are validated against this set.
var Categories = []string{"entradas", "sushi", "ramen", "postres", "bebidas"}

// ValidCategory reports whether c is a known menu category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
)

// MenuItem is a purchasable catalog entry. Its price is the authoritative
// source for order verification.
type MenuItem struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Ingredients string    `json:"ingredients,omitempty"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
