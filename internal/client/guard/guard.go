// Package guard decides whether a protected view may render.
package guard

import (
	"net/http"

	"github.com/dmitrijs2005/prescreen/internal/client/models"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
	"github.com/dmitrijs2005/prescreen/internal/common"
)

// Decision is either Authenticated or Unauthenticated.
type Decision interface {
	decision()
}

// Authenticated lets the nested view render for User.
type Authenticated struct {
	User models.User
}

// Unauthenticated sends the caller to RedirectTo.
type Unauthenticated struct {
	RedirectTo string
}

func (Authenticated) decision()   {}
func (Unauthenticated) decision() {}

// Evaluate depends only on whether the session carries a user.
func Evaluate(s session.Session) Decision {
	if s.User == nil {
		return Unauthenticated{RedirectTo: common.LoginPath}
	}
	return Authenticated{User: *s.User}
}

// Require wraps next so that it only runs for an authenticated session.
// load returns the session for the request; anything else is redirected.
func Require(load func(*http.Request) session.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch d := Evaluate(load(r)).(type) {
			case Authenticated:
				next.ServeHTTP(w, r)
			case Unauthenticated:
				http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
			}
		})
	}
}
