// Package migrations embeds the SQL schema for both storage backends.
package migrations

import "embed"

// Postgres holds the hosted-backend migrations under postgres/.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the embedded-file migrations under sqlite/.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
