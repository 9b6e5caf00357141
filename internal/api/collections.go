package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/store"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

const restaurantsEntity = "restaurants"

func (s *Server) checkCollection(w http.ResponseWriter, r *http.Request) bool {
	if e := mux.Vars(r)["entity"]; e != restaurantsEntity {
		s.fail(w, utils.Errorf(http.StatusNotFound, "unknown collection %q", e))
		return false
	}
	return true
}

func listOptions(r *http.Request) (store.ListOptions, error) {
	q := r.URL.Query()
	opts := store.ListOptions{OrderBy: "createdAt", Desc: true}

	for _, rel := range strings.Split(q.Get("relations"), ",") {
		switch strings.TrimSpace(rel) {
		case "":
		case "owner":
			opts.IncludeOwner = true
		default:
			return opts, utils.Errorf(http.StatusBadRequest, "unknown relation %q", rel)
		}
	}
	if by := q.Get("orderBy"); by != "" {
		if !store.SortableRestaurantField(by) {
			return opts, utils.Errorf(http.StatusBadRequest, "cannot order by %q", by)
		}
		opts.OrderBy = by
		opts.Desc = false
	}
	switch strings.ToUpper(q.Get("order")) {
	case "":
	case "ASC":
		opts.Desc = false
	case "DESC":
		opts.Desc = true
	default:
		return opts, utils.Errorf(http.StatusBadRequest, "order must be ASC or DESC")
	}

	var err error
	if opts.Page, err = intParam(q.Get("page"), 1); err != nil {
		return opts, err
	}
	if opts.PerPage, err = intParam(q.Get("perPage"), store.DefaultPerPage); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, utils.Errorf(http.StatusBadRequest, "bad number %q", v)
	}
	return n, nil
}

// ListHandler answers with one page of the collection.
func (s *Server) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkCollection(w, r) {
		return
	}
	opts, err := listOptions(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if opts.PerPage > store.MaxPerPage {
		opts.PerPage = store.MaxPerPage
	}
	records, total, err := s.Store.ListRestaurants(opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	page := models.Page[models.Restaurant]{
		Data:        make([]models.Restaurant, 0, len(records)),
		CurrentPage: opts.Page,
		LastPage:    int((total + int64(opts.PerPage) - 1) / int64(opts.PerPage)),
		Total:       int(total),
		PerPage:     opts.PerPage,
	}
	if page.LastPage < 1 {
		page.LastPage = 1
	}
	for _, rec := range records {
		page.Data = append(page.Data, rec.Model())
	}
	if len(records) > 0 {
		page.From = (opts.Page-1)*opts.PerPage + 1
		page.To = page.From + len(records) - 1
	}
	respondWith(w, http.StatusOK, page)
}

// CreateHandler adds a restaurant owned by the signed-in user.
func (s *Server) CreateHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkCollection(w, r) {
		return
	}
	u, _, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var form models.RestaurantForm
	if err := decode(r, &form); err != nil {
		s.fail(w, err)
		return
	}
	form.Name = strings.TrimSpace(form.Name)
	if form.Cuisine == "" {
		form.Cuisine = models.CuisineOther
	}
	if err := form.Validate(); err != nil {
		s.fail(w, err)
		return
	}
	rec, err := s.Store.CreateRestaurant(u.ID, form)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondWith(w, http.StatusCreated, rec.Model())
}

// AdminHandler is a plain-text summary of what the backend holds.
func (s *Server) AdminHandler(w http.ResponseWriter, r *http.Request) {
	c, err := s.Store.Counts()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "FlavorFind development backend\nusers: %d\nrestaurants: %d\n", c.Users, c.Restaurants)
}
