// Package assist runs one "generate answer" command against the note under
// review: it resolves settings, validates the note, asks the Answerer, writes
// the answer into the note, and refreshes the live review page.
//
// Every failure ends in a user-facing notice. Generate also returns the
// error so HTTP and background callers can report it; nothing panics out of
// this package.
package assist
