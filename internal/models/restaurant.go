package models

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNameRequired is returned when a restaurant is submitted without a name.
	ErrNameRequired = errors.New("restaurant name is required")
	// ErrUnknownCuisine is returned for a cuisine outside the fixed list.
	ErrUnknownCuisine = errors.New("unknown cuisine")
)

type Cuisine string

const (
	CuisineItalian  Cuisine = "Italian"
	CuisineMexican  Cuisine = "Mexican"
	CuisineJapanese Cuisine = "Japanese"
	CuisineIndian   Cuisine = "Indian"
	CuisineAmerican Cuisine = "American"
	CuisineOther    Cuisine = "Other"
)

// Cuisines lists the selectable cuisines in display order.
func Cuisines() []Cuisine {
	return []Cuisine{CuisineItalian, CuisineMexican, CuisineJapanese, CuisineIndian, CuisineAmerican, CuisineOther}
}

func (c Cuisine) Valid() bool {
	for _, known := range Cuisines() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCuisine matches s case-insensitively against the known cuisines.
func ParseCuisine(s string) (Cuisine, error) {
	s = strings.TrimSpace(s)
	for _, known := range Cuisines() {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", ErrUnknownCuisine
}

type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Cuisine     Cuisine   `json:"cuisine"`
	Owner       *User     `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OwnerName is the owner's display name, or "Unknown" when the owner
// relation was not loaded.
func (r Restaurant) OwnerName() string {
	if r.Owner == nil || r.Owner.Name == "" {
		return "Unknown"
	}
	return r.Owner.Name
}

// RestaurantForm holds the fields a user fills in to add a restaurant.
type RestaurantForm struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Cuisine     Cuisine `json:"cuisine"`
}

// DefaultRestaurantForm is the empty form: blank fields, cuisine Other.
func DefaultRestaurantForm() RestaurantForm {
	return RestaurantForm{Cuisine: CuisineOther}
}

// Validate mirrors the form's required-field check: only the name is
// mandatory. An empty cuisine is accepted and means Other.
func (f RestaurantForm) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if f.Cuisine != "" && !f.Cuisine.Valid() {
		return ErrUnknownCuisine
	}
	return nil
}
