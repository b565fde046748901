// Package store implements the persistence layer of the application on top
// of a MongoDB document store.
//
// It exposes repository interfaces for user credentials and telemetry
// readings, sentinel errors for well-known failure conditions, and the
// connection lifecycle for the underlying Mongo client. Repositories are
// constructed with explicit collection handles; no package-level state is
// kept.
package store
