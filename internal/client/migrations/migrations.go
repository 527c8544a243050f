// Package migrations embeds the goose migrations for the local cookie jar.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
