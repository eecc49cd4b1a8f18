package generation

// Observer receives a record of every finished Answer call.
// Implementations must be safe for concurrent use.
type Observer interface {
	// ObserveAnswer records the terminal outcome and how many requests it took.
	ObserveAnswer(kind OutcomeKind, attempts int)
}

// NopObserver discards observations.
type NopObserver struct{}

// ObserveAnswer implements Observer.
func (NopObserver) ObserveAnswer(OutcomeKind, int) {}
