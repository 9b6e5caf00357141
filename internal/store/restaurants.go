package store

import (
	"github.com/harrylevesque/flavorfind/internal/models"
)

// Sortable restaurant fields, keyed by their API name.
var restaurantColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
}

// SortableRestaurantField reports whether field may be used in OrderBy.
func SortableRestaurantField(field string) bool {
	_, ok := restaurantColumns[field]
	return ok
}

type ListOptions struct {
	OrderBy      string
	Desc         bool
	Page         int
	PerPage      int
	IncludeOwner bool
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

func (o ListOptions) normalized() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = DefaultPerPage
	}
	if o.PerPage > MaxPerPage {
		o.PerPage = MaxPerPage
	}
	if !SortableRestaurantField(o.OrderBy) {
		o.OrderBy = "createdAt"
	}
	return o
}

// CreateRestaurant saves a restaurant owned by ownerID and returns it with
// the owner loaded.
func (s *Store) CreateRestaurant(ownerID string, form models.RestaurantForm) (*RestaurantRecord, error) {
	r := &RestaurantRecord{
		Name:        form.Name,
		Description: form.Description,
		Address:     form.Address,
		Cuisine:     string(form.Cuisine),
	}
	if ownerID != "" {
		r.OwnerID = &ownerID
	}
	if err := s.db.Create(r).Error; err != nil {
		return nil, err
	}
	if ownerID != "" {
		owner, err := s.UserByID(ownerID)
		if err != nil {
			return nil, err
		}
		r.Owner = owner
	}
	return r, nil
}

// ListRestaurants returns one page of restaurants and the total count.
func (s *Store) ListRestaurants(opts ListOptions) ([]RestaurantRecord, int64, error) {
	opts = opts.normalized()

	var total int64
	if err := s.db.Model(&RestaurantRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := restaurantColumns[opts.OrderBy]
	if opts.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}
	q := s.db.Order(order).Offset((opts.Page - 1) * opts.PerPage).Limit(opts.PerPage)
	if opts.IncludeOwner {
		q = q.Preload("Owner")
	}

	var list []RestaurantRecord
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
