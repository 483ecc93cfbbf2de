package migrations

import "embed"

// Postgres holds the versioned schema for the todos store, rooted at "postgres".
//
//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
