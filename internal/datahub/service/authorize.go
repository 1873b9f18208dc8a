package service

import (
	"strings"

	"github.com/pmn-sn/datahub/internal/datahub/domain"
)

// Front-end navigation targets the route gate redirects to.
const (
	PathUserLogin  = "/login"
	PathAdminLogin = "/admin/login"
	PathAdminHome  = "/admin"
	PathDashboard  = "/dashboard"
)

// RouteDecision is the outcome of classifying one navigation attempt.
type RouteDecision struct {
	Allow    bool   `json:"allow"`
	Redirect string `json:"redirect,omitempty"`
}

func allow() RouteDecision { return RouteDecision{Allow: true} }

func redirect(target string) RouteDecision { return RouteDecision{Redirect: target} }

// AuthorizeRoute classifies a navigation to path for the given session (nil
// means unauthenticated). It is a pure function evaluated on every
// navigation: no store access, no side effects, same decision for the same
// inputs.
//
// Unauthenticated visitors are pushed to the matching login page. Admins are
// kept inside the admin area; everyone else is kept out of it.
func AuthorizeRoute(session *domain.Session, path string) RouteDecision {
	onAdmin := strings.HasPrefix(path, PathAdminHome)
	onDashboard := strings.HasPrefix(path, PathDashboard) || path == "/"
	userLoginPage := path == PathUserLogin
	adminLoginPage := path == PathAdminLogin

	if session == nil {
		if onAdmin && !adminLoginPage {
			return redirect(PathAdminLogin)
		}
		if onDashboard {
			return redirect(PathUserLogin)
		}
		return allow()
	}

	if session.IsAdmin() {
		// Admin accounts never sit on a login page or the user dashboard.
		if userLoginPage || adminLoginPage || onDashboard {
			return redirect(PathAdminHome)
		}
		return allow()
	}

	if onAdmin {
		// The admin login page stays reachable so a user may switch accounts.
		if adminLoginPage {
			return allow()
		}
		return redirect(PathDashboard)
	}
	if userLoginPage {
		return redirect(PathDashboard)
	}
	return allow()
}
