// Package routes is the console's page table. Paths are navigational: they
// name pages the TUI renders, the way URLs name pages in a browser.
package routes

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Page identifies a page model.
type Page int

const (
	PageLogin Page = iota
	PageDashboard
	PageCars
	PageCar
	PageWorks
	PageBilling
	PageBillingDoc
	PageReports
	PageLicenses
	PageCalendar
)

// Route describes one page path.
type Route struct {
	Page    Page
	Pattern string
	Title   string
	Public  bool
	Tab     string // global key switching to the page, "" for detail pages
}

// All is the page table in tab order.
var All = []Route{
	{Page: PageLogin, Pattern: "/login", Title: "Login", Public: true},
	{Page: PageDashboard, Pattern: "/dashboard", Title: "Dashboard", Tab: "1"},
	{Page: PageCars, Pattern: "/cars", Title: "Cars", Tab: "2"},
	{Page: PageCar, Pattern: "/cars/{id}", Title: "Car"},
	{Page: PageWorks, Pattern: "/works", Title: "Works", Tab: "3"},
	{Page: PageBilling, Pattern: "/billing", Title: "Billing", Tab: "4"},
	{Page: PageBillingDoc, Pattern: "/billing/{id}", Title: "Document"},
	{Page: PageReports, Pattern: "/reports", Title: "Reports", Tab: "5"},
	{Page: PageLicenses, Pattern: "/licenses", Title: "Licenses", Tab: "6"},
	{Page: PageCalendar, Pattern: "/calendar", Title: "Calendar", Tab: "7"},
}

// aliases map extra paths onto a pattern in All.
var aliases = map[string]string{
	"/": "/dashboard",
}

// Match is a resolved path.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
	Query  url.Values
}

// Param returns a URL parameter such as "id".
func (m Match) Param(key string) string {
	return m.Params[key]
}

// String returns the path with its query.
func (m Match) String() string {
	if len(m.Query) == 0 {
		return m.Path
	}
	return m.Path + "?" + m.Query.Encode()
}

// Table resolves paths to routes.
type Table struct {
	mux       *chi.Mux
	byPattern map[string]Route
}

// New builds the table from All.
func New() *Table {
	t := &Table{mux: chi.NewRouter(), byPattern: make(map[string]Route, len(All))}
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, r := range All {
		t.byPattern[r.Pattern] = r
		t.mux.Get(r.Pattern, noop)
	}
	for alias := range aliases {
		t.mux.Get(alias, noop)
	}
	return t
}

// Resolve matches raw (path with optional query) against the table.
func (t *Table) Resolve(raw string) (Match, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return Match{}, false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, false
	}

	pattern := rctx.RoutePattern()
	if target, ok := aliases[pattern]; ok {
		pattern = target
		path = target
	}
	route, ok := t.byPattern[pattern]
	if !ok {
		return Match{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}
	return Match{Route: route, Path: path, Params: params, Query: u.Query()}, true
}

// ByTab returns the route switched to by a tab key.
func ByTab(key string) (Route, bool) {
	for _, r := range All {
		if r.Tab != "" && r.Tab == key {
			return r, true
		}
	}
	return Route{}, false
}

// Tabs returns the routes shown in the tab bar.
func Tabs() []Route {
	tabs := make([]Route, 0, len(All))
	for _, r := range All {
		if r.Tab != "" {
			tabs = append(tabs, r)
		}
	}
	return tabs
}

// CarPath is the detail path of a car.
func CarPath(id string) string {
	return "/cars/" + url.PathEscape(id)
}

// BillingPath is the detail path of a billing document.
func BillingPath(id string) string {
	return "/billing/" + url.PathEscape(id)
}
