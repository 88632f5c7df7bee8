// Package common contains shared constants, sentinel errors and small
// helpers used across the portal's client and server layers.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound backend calls.
	AuthorizationHeaderName = "Authorization"
	// RequestIDHeaderName correlates a portal action with backend logs.
	RequestIDHeaderName = "X-Request-ID"

	// SessionCookieName identifies a browser session in the web portal.
	SessionCookieName = "portal_sid"

	// LoginPath and DashboardPath are the two navigation anchors every
	// view layer redirects to.
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)
