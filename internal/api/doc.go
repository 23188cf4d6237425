// Package api implements the HTTP handlers for the task API: account
// registration and login, session management, profile and avatar endpoints,
// and the ownership-scoped task CRUD surface.
package api
