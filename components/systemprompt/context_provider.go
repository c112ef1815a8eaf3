package systemprompt

// ContextProvider contributes an extra titled information block to the
// generated system prompt.
type ContextProvider interface {
	Title() string
	Info() string
}
