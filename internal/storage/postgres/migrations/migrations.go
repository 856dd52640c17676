// Package migrations embeds the goose migrations for the PostgreSQL store.
package migrations

import "embed"

// Dir is the directory inside FS that holds the migration files.
const Dir = "sql"

//go:embed sql/*.sql
var FS embed.FS
