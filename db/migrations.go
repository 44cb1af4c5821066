// Package db ships the SQL schema migrations. The same files run on
// Postgres and SQLite.
package db

import "embed"

// MigrationsDir is the directory inside Migrations holding the .sql files.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var Migrations embed.FS
