package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harrylevesque/flavorfind/internal/models"
)

type UserRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (UserRecord) TableName() string { return "users" }

func (u *UserRecord) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u UserRecord) Model() models.User {
	return models.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

type RestaurantRecord struct {
	ID          string `gorm:"primaryKey;size:36"`
	Name        string `gorm:"not null"`
	Description string
	Address     string
	Cuisine     string
	OwnerID     *string     `gorm:"size:36;index"`
	Owner       *UserRecord `gorm:"foreignKey:OwnerID"`
	CreatedAt   time.Time   `gorm:"index"`
}

func (RestaurantRecord) TableName() string { return "restaurants" }

func (r *RestaurantRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Model converts the record; the owner is embedded only when it was
// preloaded.
func (r RestaurantRecord) Model() models.Restaurant {
	m := models.Restaurant{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Cuisine:     models.Cuisine(r.Cuisine),
		CreatedAt:   r.CreatedAt,
	}
	if r.Owner != nil {
		owner := r.Owner.Model()
		m.Owner = &owner
	}
	return m
}

// RevokedToken is a logged-out token id, kept until the token would have
// expired anyway.
type RevokedToken struct {
	ID        string `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (RevokedToken) TableName() string { return "revoked_tokens" }
