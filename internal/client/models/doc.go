// Package models defines the portal's view of the pre-screen backend:
// users and roles, loan applications, supporting documents with their
// static catalog, and per-application comments.
//
// Types mirror the backend's JSON contracts. The document catalog is the
// single source of truth for which documents an application needs and
// in what order they are shown.
package models
