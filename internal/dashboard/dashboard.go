// Package dashboard is the restaurant list and the add-restaurant form
// shown to a signed-in user.
package dashboard

import (
	"context"
	"sync"

	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

// AlertCreateFailed is shown when the backend rejects a new restaurant.
const AlertCreateFailed = "Could not create restaurant."

// Source is where restaurants are read from and written to.
type Source interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	Create(ctx context.Context, form models.RestaurantForm) (*models.Restaurant, error)
}

// Session is what the view needs from the application context.
type Session interface {
	User() *models.User
	Alert(msg string)
	Logger() *utils.Logger
}

type View struct {
	session Session
	source  Source

	mu          sync.Mutex
	restaurants []models.Restaurant
	loading     bool
	form        models.RestaurantForm
}

func New(session Session, source Source) *View {
	return &View{
		session: session,
		source:  source,
		loading: true,
		form:    models.DefaultRestaurantForm(),
	}
}

// Load fetches the full list. On failure the current list is kept.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	list, err := v.source.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.session.Logger().Errorf("dashboard: loading restaurants: %v", err)
		return err
	}
	v.restaurants = list
	return nil
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Restaurants returns a copy of the list, newest first.
func (v *View) Restaurants() []models.Restaurant {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Restaurant, len(v.restaurants))
	copy(out, v.restaurants)
	return out
}

func (v *View) Form() models.RestaurantForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *View) SetForm(f models.RestaurantForm) {
	v.mu.Lock()
	v.form = f
	v.mu.Unlock()
}

// Submit sends the current form. A form that fails validation is never
// sent. On success the new restaurant goes to the top of the list and the
// form is reset; on a backend failure the user is alerted and nothing
// changes.
func (v *View) Submit(ctx context.Context) error {
	form := v.Form()
	if form.Cuisine == "" {
		form.Cuisine = models.CuisineOther
	}
	if err := form.Validate(); err != nil {
		return err
	}

	created, err := v.source.Create(ctx, form)
	if err != nil {
		v.session.Logger().Errorf("dashboard: creating restaurant: %v", err)
		v.session.Alert(AlertCreateFailed)
		return err
	}
	// The create response carries no embedded owner.
	if created.Owner == nil {
		created.Owner = v.session.User()
	}

	v.mu.Lock()
	v.restaurants = append([]models.Restaurant{*created}, v.restaurants...)
	v.form = models.DefaultRestaurantForm()
	v.mu.Unlock()
	return nil
}
