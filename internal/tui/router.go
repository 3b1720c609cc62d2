package tui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// Page identifies which view a route mounts.
type Page int

const (
	PageAccounts Page = iota
	PageContracts
	PageDashboard
)

// Route names, also used to build paths back from a Route.
const (
	routeAccounts  = "accounts"
	routeContracts = "contracts"
	routeDashboard = "dashboard"
)

// Route is a resolved location in the dashboard.
type Route struct {
	Page       Page
	AccountID  string
	ContractID string
}

var routes = newRouter()

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Path("/").Name(routeAccounts)
	r.Path("/accounts/{id}").Name(routeContracts)
	r.Path("/accounts/{id}/contracts/{contractId}").Name(routeDashboard)
	return r
}

// AccountsRoute is the root route.
func AccountsRoute() Route { return Route{Page: PageAccounts} }

// ContractsRoute lists the contracts of one account.
func ContractsRoute(accountID string) Route {
	return Route{Page: PageContracts, AccountID: accountID}
}

// DashboardRoute shows one contract of one account.
func DashboardRoute(accountID, contractID string) Route {
	return Route{Page: PageDashboard, AccountID: accountID, ContractID: contractID}
}

// ParseRoute resolves a path against the route table.
// Anything that does not match resolves to the accounts route.
func ParseRoute(path string) Route {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return AccountsRoute()
	}

	var match mux.RouteMatch
	if !routes.Match(req, &match) || match.Route == nil {
		return AccountsRoute()
	}

	switch match.Route.GetName() {
	case routeContracts:
		return ContractsRoute(match.Vars["id"])
	case routeDashboard:
		return DashboardRoute(match.Vars["id"], match.Vars["contractId"])
	default:
		return AccountsRoute()
	}
}

// Path renders the route back into a path that ParseRoute accepts.
func (r Route) Path() string {
	var (
		u   *url.URL
		err error
	)
	switch r.Page {
	case PageContracts:
		u, err = routes.Get(routeContracts).URLPath("id", url.PathEscape(r.AccountID))
	case PageDashboard:
		u, err = routes.Get(routeDashboard).URLPath(
			"id", url.PathEscape(r.AccountID),
			"contractId", url.PathEscape(r.ContractID),
		)
	default:
		return "/"
	}
	if err != nil {
		return "/"
	}
	return u.Path
}

// Back is the route Esc returns to.
func (r Route) Back() Route {
	switch r.Page {
	case PageDashboard:
		return ContractsRoute(r.AccountID)
	default:
		return AccountsRoute()
	}
}
