// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
// Each SQL medium has its own directory because the dialects differ.
package migrations

import (
	"embed"
	"io/fs"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Postgres returns the migrations for the Postgres medium, rooted so goose
// sees the .sql files at the top level.
func Postgres() fs.FS { return sub("postgres") }

// SQLite returns the migrations for the SQLite medium.
func SQLite() fs.FS { return sub("sqlite") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(FS, dir)
	if err != nil {
		// Only reachable if the embed pattern above is changed.
		panic("migrations: " + err.Error())
	}
	return f
}
