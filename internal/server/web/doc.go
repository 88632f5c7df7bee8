// Package web serves the portal to browsers.
//
// Every request is bound to a browser session identified by the
// portal_sid cookie. The session record (token and user) lives in redis
// under that id, so any number of portal instances can serve the same
// browser. Notifications raised while handling a request are either
// rendered on the page it produces or, when the handler redirects,
// queued in redis and shown on the next page.
//
// Routes
//
//	GET  /login, /register, /forgot-id     public forms
//	POST /login, /register, /forgot-id
//	GET  /healthz, /metrics
//
//	GET  /, /dashboard                      everything below requires a session
//	GET  /application/new
//	POST /application/new
//	GET  /application/{id}
//	GET  /application/{id}/pre-screen
//	POST /application/{id}/delete
//	POST /application/{id}/documents
//	POST /application/{id}/documents/{docID}/status
//	GET  /application/{id}/documents/{docID}/preview
//	POST /application/{id}/comments
//	POST /logout
package web
