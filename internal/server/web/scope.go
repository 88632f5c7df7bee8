package web

import (
	"context"
	"net/http"

	sessionrepo "github.com/dmitrijs2005/prescreen/internal/client/repositories/session"

	"github.com/dmitrijs2005/prescreen/internal/client/notify"
	"github.com/dmitrijs2005/prescreen/internal/client/session"
	"github.com/dmitrijs2005/prescreen/internal/common"
	"github.com/google/uuid"
)

const sessionExpiredMessage = "Your session has expired. Please login again."

type ctxKey string

const scopeKey ctxKey = "scope"

// scope is what one request needs to act for its browser session.
type scope struct {
	sid      string
	store    *session.Store
	notifier *notify.Recorder
}

func scopeFrom(ctx context.Context) *scope {
	sc, _ := ctx.Value(scopeKey).(*scope)
	return sc
}

// requestToken is the gateway's token source: the token of the session
// bound to ctx, if any.
func requestToken(ctx context.Context) string {
	if sc := scopeFrom(ctx); sc != nil && sc.store != nil {
		return sc.store.AccessToken(ctx)
	}
	return ""
}

// withSession restores the browser session before next runs and queues
// whatever next left unrendered as flashes for the following page.
func (p *Portal) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := p.sessionID(w, r)

		sc := &scope{sid: sid, notifier: &notify.Recorder{}}
		ctx = context.WithValue(ctx, scopeKey, sc)
		sc.store = session.NewStore(sessionrepo.NewRedisRepository(p.rdb, sid, p.ttl), p.auth, sc.notifier, p.logger)

		result, err := sc.store.Restore(ctx)
		if err != nil {
			p.logger.Error(ctx, "failed to restore session", "error", err)
		}
		if result == session.RestoreExpired {
			sc.notifier.Error(ctx, sessionExpiredMessage)
		}

		next.ServeHTTP(w, r.WithContext(ctx))

		if err := p.flashes.Push(ctx, sid, sc.notifier.Drain()...); err != nil {
			p.logger.Error(ctx, "failed to queue notifications", "error", err)
		}
	})
}

// sessionID returns the id from the session cookie, issuing a new one
// when the cookie is missing or malformed.
func (p *Portal) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(p.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}
