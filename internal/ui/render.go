// Package ui draws the FlavorFind screens on a terminal.
package ui

import (
	"io"
	"strings"

	fmt "github.com/jhunt/go-ansi"

	"github.com/harrylevesque/flavorfind/internal/app"
	"github.com/harrylevesque/flavorfind/internal/dashboard"
	"github.com/harrylevesque/flavorfind/internal/models"
)

// Render writes whatever screen the application context currently routes
// to: the startup screen while the session lookup runs, then the landing
// or the dashboard screen.
func Render(w io.Writer, a *app.App, v *dashboard.View, adminURL string) {
	connected, status := a.Connection()
	Indicator(w, connected, status)

	if a.Loading() {
		fmt.Fprintf(w, "\n@W{Loading FlavorFind...}\n")
		return
	}
	switch a.Screen() {
	case app.ScreenDashboard:
		Dashboard(w, a.User(), v, adminURL)
	default:
		Landing(w)
	}
}

// Indicator prints the backend reachability badge.
func Indicator(w io.Writer, connected bool, status models.ConnectionStatus) {
	if connected {
		fmt.Fprintf(w, "@G{✅ Backend Connected}  (%s)\n", status)
		return
	}
	fmt.Fprintf(w, "@R{❌ Backend Disconnected}  (%s)\n", status)
}

func Landing(w io.Writer) {
	fmt.Fprintf(w, "\n@B{FlavorFind}\n")
	fmt.Fprintf(w, "Discover and share the restaurants you love.\n\n")
	fmt.Fprintf(w, "  @C{login} EMAIL          sign in to your account\n")
	fmt.Fprintf(w, "  @C{signup} NAME EMAIL    create a new account\n")
	fmt.Fprintf(w, "  @C{quit}                 leave FlavorFind\n")
}

// Dashboard prints the header, the add-restaurant hint and the list.
func Dashboard(w io.Writer, u *models.User, v *dashboard.View, adminURL string) {
	name := ""
	if u != nil {
		name = u.Name
	}
	fmt.Fprintf(w, "\n@B{FlavorFind Dashboard}   Welcome, %s!\n", name)
	if adminURL != "" {
		fmt.Fprintf(w, "Admin panel: %s\n", adminURL)
	}

	cuisines := make([]string, 0, len(models.Cuisines()))
	for _, c := range models.Cuisines() {
		cuisines = append(cuisines, string(c))
	}
	fmt.Fprintf(w, "\n@Y{Add a New Restaurant}\n")
	fmt.Fprintf(w, "  @C{add}       name, address and cuisine (%s)\n", strings.Join(cuisines, ", "))
	fmt.Fprintf(w, "  @C{refresh}   reload the list\n")
	fmt.Fprintf(w, "  @C{logout}    sign out\n")

	fmt.Fprintf(w, "\n@Y{Restaurants}\n")
	if v.Loading() {
		fmt.Fprintf(w, "Loading restaurants...\n")
		return
	}
	list := v.Restaurants()
	if len(list) == 0 {
		fmt.Fprintf(w, "No restaurants found. Be the first to add one!\n")
		return
	}
	for _, r := range list {
		Card(w, r)
	}
}

// Card prints one restaurant.
func Card(w io.Writer, r models.Restaurant) {
	fmt.Fprintf(w, "\n  @G{%s}  [%s]\n", r.Name, r.Cuisine)
	if r.Address != "" {
		fmt.Fprintf(w, "  %s\n", r.Address)
	}
	fmt.Fprintf(w, "  Owner: %s\n", r.OwnerName())
}
