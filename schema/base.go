package schema

// Base is a zero-value schema meant to be embedded in concrete input and
// output types.
type Base struct{}

// String implements Schema interface
func (r Base) String() string {
	return ""
}
