// Package migrations owns the CLI's local SQLite database: the embedded
// goose migrations and the helpers that open and upgrade it.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
