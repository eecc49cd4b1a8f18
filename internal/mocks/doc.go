// Package mocks provides reusable test doubles for the collaborators of the
// assist service: the Answerer, the live view and the notifier.
//
// Each mock has function fields to override behavior and records its calls
// for verification:
//
//	answerer := &mocks.MockAnswerer{Response: "42"}
//	// ... run the code under test ...
//	assert.Equal(t, []string{"What is 6x7?"}, answerer.Questions())
package mocks
