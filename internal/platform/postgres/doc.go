// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of database connections, per-run sessions, query
// execution and schema migrations.
package postgres
