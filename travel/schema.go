package travel

import (
	"encoding/json"

	"github.com/voyagent/voyagent/schema"
	"github.com/voyagent/voyagent/tools/flights"
	"github.com/voyagent/voyagent/tools/hotels"
)

// Action is the router's decision for a user turn.
type Action = string

const (
	// ActionAnswer replies directly without a search.
	ActionAnswer Action = "answer"
	// ActionSearchFlights runs the flight search tool.
	ActionSearchFlights Action = "search_flights"
	// ActionSearchHotels runs the hotel search tool.
	ActionSearchHotels Action = "search_hotels"
)

// RouterOutput is the structured decision of the routing agent: either a
// direct answer, or exactly one tool invocation with extracted parameters.
type RouterOutput struct {
	schema.Base
	// Action decides how the turn proceeds.
	Action Action `json:"action" jsonschema:"title=action,enum=answer,enum=search_flights,enum=search_hotels,description=Whether to answer directly or run one of the search tools." validate:"required"`
	// Flights carries the flight search parameters when action is search_flights.
	Flights *flights.Input `json:"flights,omitempty" jsonschema:"title=flights,description=Flight search parameters, required when action is search_flights."`
	// Hotels carries the hotel search parameters when action is search_hotels.
	Hotels *hotels.Input `json:"hotels,omitempty" jsonschema:"title=hotels,description=Hotel search parameters, required when action is search_hotels."`
	// Answer is the reply text when action is answer.
	Answer string `json:"answer,omitempty" jsonschema:"title=answer,description=The reply to the user, required when action is answer."`
}

func (s RouterOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
