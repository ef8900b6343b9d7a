package migrations

import "embed"

// FS contains embedded SQLite migrations for asset storage.
//
//go:embed *.sql
var FS embed.FS
