// Package store defines the persistence interfaces and shared error
// taxonomy used by the storage implementations. Handlers and services
// depend on these interfaces, never on a concrete backend.
package store
