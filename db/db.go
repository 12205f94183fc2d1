// Package db embeds the goose migration scripts applied at startup.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
