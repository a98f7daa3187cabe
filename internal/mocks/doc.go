// Package mocks provides hand-rolled test doubles for the store and auth
// interfaces. Each mock exposes Fn fields to override behavior per test and
// falls back to an in-memory default implementation.
package mocks
