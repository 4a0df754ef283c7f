package trace

// Multi fans instruction and event records out to every sink in the slice,
// in order. A nil Multi is a valid, silent Sink.
type Multi []Sink

// Instruction forwards i to every sink.
func (m Multi) Instruction(i Instruction) {
	for _, s := range m {
		s.Instruction(i)
	}
}

// Event forwards e to every sink.
func (m Multi) Event(e Event) {
	for _, s := range m {
		s.Event(e)
	}
}
