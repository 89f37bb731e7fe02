// Package migrations embeds the goose SQL migrations so the server, the migrate CLI and
// integration tests apply the same schema.
package migrations

import "embed"

// FS holds all *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
