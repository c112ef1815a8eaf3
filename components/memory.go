package components

import (
	"fmt"
	"sync"

	"github.com/voyagent/voyagent/schema"
)

// Memory manages the chat transcript for an agent. Messages are append-only
// and keep their relative order; when a max-message cap is configured the
// oldest messages are dropped first. Threadsafe.
type Memory struct {
	// history is the ordered list of messages in the conversation.
	history []Message
	// turnID is the ID of the current turn.
	turnID string
	// maxMessages caps the history length, zero means unbounded.
	maxMessages int
	mtx         sync.RWMutex
}

// NewMemory initializes a Memory with an empty history and an optional
// message cap.
func NewMemory(maxMessages int) *Memory {
	return &Memory{
		maxMessages: maxMessages,
		history:     make([]Message, 0, maxMessages+1),
	}
}

// MaxMessages returns the max number of messages
func (m *Memory) MaxMessages() int {
	return m.maxMessages
}

// SetMaxMessages set the max number of messages
func (m *Memory) SetMaxMessages(maxMessages int) *Memory {
	m.maxMessages = maxMessages
	return m
}

// TurnID returns the current turn ID
func (m *Memory) TurnID() string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.turnID
}

// NewTurn starts a new turn by generating a random turn ID.
func (m *Memory) NewTurn() string {
	m.mtx.Lock()
	m.turnID = NewTurnID()
	m.mtx.Unlock()
	return m.turnID
}

// NewMessage appends a message to the transcript and manages overflow.
func (m *Memory) NewMessage(role MessageRole, content schema.Schema) *Message {
	m.mtx.Lock()
	msg := NewMessage(role, content).SetTurnID(m.turnID)
	m.history = append(m.history, *msg)
	if m.maxMessages > 0 && len(m.history) > m.maxMessages {
		m.history = m.history[1:]
	}
	m.mtx.Unlock()
	return msg
}

// History returns a copy of the transcript.
func (m *Memory) History() []Message {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	history := make([]Message, len(m.history))
	copy(history, m.history)
	return history
}

// Reset drops the transcript and the current turn ID.
func (m *Memory) Reset() *Memory {
	m.mtx.Lock()
	m.history = make([]Message, 0, m.maxMessages)
	m.turnID = ""
	m.mtx.Unlock()
	return m
}

// DeleteTurn removes all messages belonging to the given turn ID.
// Returns an error if the turn ID is not found.
func (m *Memory) DeleteTurn(turnID string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	l := len(m.history)
	list := make([]Message, 0, l)
	for _, v := range m.history {
		if v.TurnID() == turnID {
			continue
		}
		list = append(list, v)
	}
	if len(list) == l {
		return fmt.Errorf("turn %s not found in memory", turnID)
	}
	m.history = list
	if num := len(list); num == 0 {
		m.turnID = ""
	} else if turnID == m.turnID {
		m.turnID = list[num-1].TurnID()
	}
	return nil
}

// MessageCount returns the number of messages in the transcript.
func (m *Memory) MessageCount() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.history)
}

// TokenCount estimates the token footprint of the transcript using the
// given counter.
func (m *Memory) TokenCount(tc TokenCounter) int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	var n int
	for _, msg := range m.history {
		n += tc.Count(msg.StringifiedContent())
	}
	return n
}
