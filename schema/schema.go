package schema

import "encoding/json"

// Schema is the interface for structured message content. Agent inputs,
// agent outputs and tool payloads all implement it so that they can be
// carried through the chat transcript uniformly.
type Schema interface {
	// String returns the prompt-facing representation of the content.
	String() string
}

// Stringify serializes a schema for inclusion in a chat message. Plain
// strings pass through untouched, everything else is JSON encoded.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes is Stringify for callers that want the raw bytes.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
