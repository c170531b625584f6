// Package migrations embeds the SQL schema files so a single binary can
// bootstrap a fresh database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
