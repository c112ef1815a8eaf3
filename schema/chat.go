package schema

import "encoding/json"

// Input is the default chat input schema: a single free-text message from
// the user.
type Input struct {
	Base
	// ChatMessage is the text of the user's message.
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message of the chat user." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{ChatMessage: msg}
}

func (s Input) String() string {
	return s.ChatMessage
}

// Output is the default chat output schema: the assistant's reply plus
// optional follow-up questions the user might ask next.
type Output struct {
	Base
	// ChatMessage is the markdown formatted reply shown to the user.
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The markdown formatted reply of the assistant." validate:"required"`
	// SuggestedQuestions is a list of up to 3 follow-up questions related to the reply.
	SuggestedQuestions []string `json:"suggested_questions,omitempty" jsonschema:"title=suggested_questions,description=A list of up to 3 follow-up questions related to the reply."`
}

func NewOutput(msg string) *Output {
	return &Output{ChatMessage: msg}
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
