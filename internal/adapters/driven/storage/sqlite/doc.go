// Package sqlite persists the action journal in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory, named NNN_description.up.sql. Applied versions are recorded in
// schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.lumen/data/journal.db
package sqlite
