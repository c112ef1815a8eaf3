package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/voyagent/voyagent/components"
	"github.com/voyagent/voyagent/schema"
)

// Delegate relays one chat turn through the hosted model. travel.Planner is
// the production implementation.
type Delegate interface {
	Run(ctx context.Context, input *schema.Input, output *schema.Output, apiResp *components.ApiResponse) error
}

// Turn is one displayed entry of the chat transcript.
type Turn struct {
	Role components.MessageRole `json:"role"`
	Text string                 `json:"text"`
	Ts   int64                  `json:"ts"`
}

// Session is one independent conversation. The displayed transcript holds
// only user and assistant turns; the delegate keeps its own model context,
// tool payloads included.
type Session struct {
	// ID identifies the session to the UI.
	ID         string
	delegate   Delegate
	transcript []Turn
	// mtx serializes turns within the session, each turn is one synchronous
	// call chain.
	mtx sync.Mutex
}

// Chat appends the user message, runs the delegate and appends the reply.
// On delegate failure the user turn stays in the transcript and no
// assistant turn is added.
func (s *Session) Chat(ctx context.Context, message string) (*schema.Output, *components.ApiResponse, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.transcript = append(s.transcript, Turn{Role: components.UserRole, Text: message, Ts: time.Now().Unix()})
	output := new(schema.Output)
	apiResp := new(components.ApiResponse)
	if err := s.delegate.Run(ctx, schema.NewInput(message), output, apiResp); err != nil {
		return nil, nil, err
	}
	s.transcript = append(s.transcript, Turn{Role: components.AssistantRole, Text: output.ChatMessage, Ts: time.Now().Unix()})
	return output, apiResp, nil
}

// Transcript returns a copy of the displayed transcript in turn order.
func (s *Session) Transcript() []Turn {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	turns := make([]Turn, len(s.transcript))
	copy(turns, s.transcript)
	return turns
}

// Store holds the live sessions. Sessions never outlive the process, there
// is no persistence layer.
type Store struct {
	factory  func() Delegate
	sessions map[string]*Session
	created  *atomic.Int64
	mtx      sync.RWMutex
}

// NewStore returns a Store creating delegates with the given factory.
func NewStore(factory func() Delegate) *Store {
	return &Store{
		factory:  factory,
		sessions: make(map[string]*Session),
		created:  atomic.NewInt64(0),
	}
}

// Get returns the session with the given ID.
func (st *Store) Get(id string) (*Session, bool) {
	st.mtx.RLock()
	defer st.mtx.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session with the given ID, creating a fresh one
// when the ID is empty or unknown.
func (st *Store) GetOrCreate(id string) *Session {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s
		}
	}
	st.mtx.Lock()
	defer st.mtx.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := &Session{
		ID:       id,
		delegate: st.factory(),
	}
	st.sessions[id] = s
	st.created.Inc()
	return s
}

// Created returns the number of sessions created since startup.
func (st *Store) Created() int64 {
	return st.created.Load()
}
