package manifest

import (
	"context"

	"github.com/harrylevesque/flavorfind/internal/models"
)

// listPageSize is the page size used when walking a whole collection.
const listPageSize = 50

// Users is the typed view of the User auth entity.
type Users struct {
	c *Client
	e *Entity
}

func (c *Client) Users() *Users {
	return &Users{c: c, e: c.From(DefaultAuthEntity)}
}

func (u *Users) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := u.e.Me(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) Login(ctx context.Context, email, password string) error {
	return u.e.Login(ctx, email, password)
}

func (u *Users) Signup(ctx context.Context, name, email, password string) error {
	return u.e.Signup(ctx, map[string]string{"name": name, "email": email, "password": password})
}

func (u *Users) Logout(ctx context.Context) error {
	return u.c.Logout(ctx)
}

// Restaurants is the typed view of the Restaurant collection.
type Restaurants struct {
	e *Entity
}

func (c *Client) Restaurants() *Restaurants {
	return &Restaurants{e: c.From("Restaurant")}
}

// List returns every restaurant with its owner embedded, newest first.
func (r *Restaurants) List(ctx context.Context) ([]models.Restaurant, error) {
	var all []models.Restaurant
	opts := FindOptions{
		Include: []string{"owner"},
		Sort:    &Sort{Field: "createdAt", Desc: true},
		PerPage: listPageSize,
	}
	for page := 1; ; page++ {
		opts.Page = page
		var p models.Page[models.Restaurant]
		if err := r.e.Find(ctx, opts, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Data...)
		if !p.HasMore() || len(p.Data) == 0 {
			return all, nil
		}
	}
}

func (r *Restaurants) Create(ctx context.Context, form models.RestaurantForm) (*models.Restaurant, error) {
	var created models.Restaurant
	if err := r.e.Create(ctx, form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
