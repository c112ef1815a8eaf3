// Package flights searches flights with the Google Flights engine through
// SerpAPI.
package flights

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/voyagent/voyagent/schema"
	"github.com/voyagent/voyagent/serpapi"
	"github.com/voyagent/voyagent/tools"
)

const engine = "google_flights"

// Trip types understood by the Google Flights engine.
const (
	RoundTrip = 1
	OneWay    = 2
	MultiCity = 3
)

var validate = validator.New()

// Input is the schema for a flight search request.
type Input struct {
	schema.Base
	// DepartureID is the departure airport code (IATA).
	DepartureID string `json:"departure_id" jsonschema:"title=departure_id,description=Departure airport code (IATA)." validate:"required"`
	// ArrivalID is the arrival airport code (IATA).
	ArrivalID string `json:"arrival_id" jsonschema:"title=arrival_id,description=Arrival airport code (IATA)." validate:"required"`
	// OutboundDate defines the outbound date. The format is YYYY-MM-DD. e.g. 2026-06-22
	OutboundDate string `json:"outbound_date" jsonschema:"title=outbound_date,description=Outbound date. The format is YYYY-MM-DD. e.g. 2026-06-22" validate:"required,datetime=2006-01-02"`
	// ReturnDate defines the return date. The format is YYYY-MM-DD. e.g. 2026-06-28
	ReturnDate string `json:"return_date,omitempty" jsonschema:"title=return_date,description=Return date. The format is YYYY-MM-DD. e.g. 2026-06-28. Required for round trips." validate:"omitempty,datetime=2006-01-02"`
	// Adults defines the number of adults. Default to 1.
	Adults int `json:"adults,omitempty" jsonschema:"title=adults,default=1,description=Number of adults. Default to 1."`
	// Children defines the number of children. Default to 0.
	Children int `json:"children,omitempty" jsonschema:"title=children,default=0,description=Number of children. Default to 0."`
	// InfantsInSeat defines the number of infants in seat. Default to 0.
	InfantsInSeat int `json:"infants_in_seat,omitempty" jsonschema:"title=infants_in_seat,default=0,description=Number of infants in seat. Default to 0."`
	// InfantsOnLap defines the number of infants on lap. Default to 0.
	InfantsOnLap int `json:"infants_on_lap,omitempty" jsonschema:"title=infants_on_lap,default=0,description=Number of infants on lap. Default to 0."`
	// Type defines the type of the trip. 1 is round trip (default), 2 is one way, 3 is multi-city.
	Type int `json:"type,omitempty" jsonschema:"title=type,default=1,description=Type of the trip. 1 is round trip (default), 2 is one way, 3 is multi-city." validate:"omitempty,oneof=1 2 3"`
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Airport is one endpoint of a flight segment.
type Airport struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
	Time string `json:"time,omitempty"`
}

// Segment is a single flight leg.
type Segment struct {
	DepartureAirport Airport `json:"departure_airport"`
	ArrivalAirport   Airport `json:"arrival_airport"`
	// Duration is the leg duration in minutes.
	Duration     int    `json:"duration,omitempty"`
	Airline      string `json:"airline,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"`
	TravelClass  string `json:"travel_class,omitempty"`
}

// Layover is a stop between two segments.
type Layover struct {
	Name string `json:"name,omitempty"`
	ID   string `json:"id,omitempty"`
	// Duration is the layover duration in minutes.
	Duration int `json:"duration,omitempty"`
}

// FlightOption is one bookable itinerary.
type FlightOption struct {
	Segments []Segment `json:"flights,omitempty"`
	Layovers []Layover `json:"layovers,omitempty"`
	// TotalDuration is the itinerary duration in minutes.
	TotalDuration int `json:"total_duration,omitempty"`
	// Price is the ticket price in the requested currency.
	Price int    `json:"price,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Output is the schema for flight search results.
type Output struct {
	schema.Base
	// Options is the list of found itineraries, best matches first.
	Options []FlightOption `json:"options,omitempty" jsonschema:"title=options,description=List of found flight itineraries, best matches first."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	currency   string
	maxResults int
	client     *serpapi.Client
}

// Tool searches flights with the Google Flights engine.
type Tool struct {
	Config
}

var _ tools.OrchestrationTool = (*Tool)(nil)

func New(client *serpapi.Client, opts ...Option) *Tool {
	ret := new(Tool)
	ret.client = client
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("FlightSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Find flights between two airports using the Google Flights engine.")
	}
	if ret.currency == "" {
		ret.currency = "USD"
	}
	if ret.maxResults == 0 {
		ret.maxResults = 10
	}
	return ret
}

// Run executes the flight search synchronously with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input, output *Output) error {
	t.OnStart(ctx, t, input)
	if err := t.run(ctx, input, output); err != nil {
		t.OnError(ctx, t, input, err)
		return err
	}
	t.OnEnd(ctx, t, input, output)
	return nil
}

func (t *Tool) run(ctx context.Context, input *Input, output *Output) error {
	if t.client == nil {
		return errors.New("serpapi client is not configured")
	}
	if err := validate.Struct(input); err != nil {
		return err
	}
	params := input.values(t.currency)
	body, err := t.client.Search(ctx, engine, params)
	if err != nil {
		return err
	}
	// best_flights is only present when the engine found ranked matches,
	// other_flights carries the rest.
	options := make([]FlightOption, 0, t.maxResults)
	for _, path := range []string{"best_flights", "other_flights"} {
		for _, item := range gjson.GetBytes(body, path).Array() {
			if len(options) >= t.maxResults {
				break
			}
			var option FlightOption
			if err := json.Unmarshal([]byte(item.Raw), &option); err != nil {
				return err
			}
			options = append(options, option)
		}
	}
	output.Options = options
	return nil
}

// RunOrchestration implements tools.OrchestrationTool
func (t *Tool) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	out := new(Output)
	if err := t.Run(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}
