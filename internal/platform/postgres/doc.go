// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces: the assistant settings document as a single JSONB row and host
// notes as JSONB field maps. The schema is embedded and applied with goose.
package postgres
