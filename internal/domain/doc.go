// Package domain contains the core entities of the review assistant: the
// persisted Settings document, the host's Note and review state, and the
// transient prompt Turn. It is independent of any storage, transport, or
// generative backend.
package domain
