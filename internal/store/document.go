package store

import "context"

// DocumentStore persists the assistant settings document as a whole.
// There is no partial-field API: callers read and replace the full document.
type DocumentStore interface {
	// Get returns the raw stored document. found is false when no document has
	// ever been written; that is not an error.
	Get(ctx context.Context) (doc []byte, found bool, err error)

	// Set overwrites the stored document with doc.
	Set(ctx context.Context, doc []byte) error
}
