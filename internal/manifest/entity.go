package manifest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// DefaultAuthEntity is the authenticable entity used by Client.Login.
const DefaultAuthEntity = "User"

// Slug turns an entity name into its URL segment: lower case, pluralized.
// "Restaurant" -> "restaurants", "Category" -> "categories".
func Slug(entity string) string {
	s := strings.ToLower(strings.TrimSpace(entity))
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "s"):
		return s
	case strings.HasSuffix(s, "y") && len(s) > 1 && !isVowel(rune(s[len(s)-2])):
		return s[:len(s)-1] + "ies"
	default:
		return s + "s"
	}
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", unicode.ToLower(r))
}

// Entity addresses one entity type of the backend.
type Entity struct {
	c    *Client
	slug string
}

func (c *Client) From(entity string) *Entity {
	return &Entity{c: c, slug: Slug(entity)}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates as a record of this entity and keeps the token.
func (e *Entity) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	err := e.c.do(ctx, http.MethodPost, "/auth/"+e.slug+"/login", nil, credentials{email, password}, &resp)
	if err != nil {
		return err
	}
	e.c.setToken(resp.Token)
	return nil
}

// Signup creates a record of this entity. The token the backend hands
// back is not kept: callers log in explicitly afterwards.
func (e *Entity) Signup(ctx context.Context, fields interface{}) error {
	return e.c.do(ctx, http.MethodPost, "/auth/"+e.slug+"/signup", nil, fields, nil)
}

// Me loads the record the current session belongs to into out.
func (e *Entity) Me(ctx context.Context, out interface{}) error {
	if !e.c.Authenticated() {
		return ErrNotAuthenticated
	}
	return e.c.do(ctx, http.MethodGet, "/auth/"+e.slug+"/me", nil, nil, out)
}

// Sort orders a collection query by one field.
type Sort struct {
	Field string
	Desc  bool
}

// FindOptions are the query options of Entity.Find.
type FindOptions struct {
	// Include lists the relations to embed in each item.
	Include []string
	Sort    *Sort
	Page    int
	PerPage int
}

func (o FindOptions) values() url.Values {
	q := url.Values{}
	if len(o.Include) > 0 {
		q.Set("relations", strings.Join(o.Include, ","))
	}
	if o.Sort != nil && o.Sort.Field != "" {
		q.Set("orderBy", o.Sort.Field)
		if o.Sort.Desc {
			q.Set("order", "DESC")
		} else {
			q.Set("order", "ASC")
		}
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(o.PerPage))
	}
	return q
}

// Find queries the collection; out is usually a *models.Page[T].
func (e *Entity) Find(ctx context.Context, opts FindOptions, out interface{}) error {
	return e.c.do(ctx, http.MethodGet, "/collections/"+e.slug, opts.values(), nil, out)
}

// Create stores a new item and decodes the stored version into out.
func (e *Entity) Create(ctx context.Context, fields, out interface{}) error {
	return e.c.do(ctx, http.MethodPost, "/collections/"+e.slug, nil, fields, out)
}
