package domain

// Fragment is one incremental piece of AI-generated text.
// A fragment with a non-empty Err is terminal: it is always the last one
// in a stream and carries no Text.
type Fragment struct {
	Text string
	Err  string
}

// IsError reports whether f is the terminal error fragment of a stream.
func (f Fragment) IsError() bool {
	return f.Err != ""
}
