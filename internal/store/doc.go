// Package store defines interfaces for data persistence operations: the
// whole-document settings store and the host's note store. Implementations
// live under internal/platform (filestore, memstore, postgres).
package store
