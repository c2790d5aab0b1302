// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the worker's core logic: a run talks to a DocumentSession and never to
// a concrete database driver.
package store
