// Package mocks provides centralized mock implementations for testing.
//
// Each mock mirrors one store or service interface. Function fields override
// individual methods when a test needs custom behavior; when left nil the
// mocks fall back to a simple in-memory default, which is enough for most
// handler and service tests.
package mocks
