// Package settings resolves the assistant's settings document. It seeds the
// store with the built-in defaults on first use, back-fills any default key a
// stored document lacks (persisting the merge), and replaces the document as
// a whole on save. Values are not range-checked here; the editing surface
// enforces ranges and the resolver trusts the store.
package settings
