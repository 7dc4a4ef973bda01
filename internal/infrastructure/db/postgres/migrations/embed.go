// Package migrations embeds the auth service schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
