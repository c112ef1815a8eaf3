// Package hotels searches accommodation with the Google Hotels engine
// through SerpAPI.
package hotels

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

const engine = "google_hotels"

// SortByRating asks the engine for the highest rated properties first.
const SortByRating = "8"

var validate = validator.New()

// Input is the schema for a hotel search request.
type Input struct {
	schema.Base
	// Query is the location of the hotel.
	Query string `json:"q" jsonschema:"title=q,description=Location of the hotel." validate:"required"`
	// CheckInDate is the check-in date. The format is YYYY-MM-DD. e.g. 2026-06-22
	CheckInDate string `json:"check_in_date" jsonschema:"title=check_in_date,description=Check-in date. The format is YYYY-MM-DD. e.g. 2026-06-22" validate:"required,datetime=2006-01-02"`
	// CheckOutDate is the check-out date. The format is YYYY-MM-DD. e.g. 2026-06-28
	CheckOutDate string `json:"check_out_date" jsonschema:"title=check_out_date,description=Check-out date. The format is YYYY-MM-DD. e.g. 2026-06-28" validate:"required,datetime=2006-01-02"`
	// SortBy is the sorting method. Default is sort by highest rating.
	SortBy string `json:"sort_by,omitempty" jsonschema:"title=sort_by,default=8,description=Sorting method. Default is sort by highest rating."`
	// Adults is the number of adults. Default to 1.
	Adults int `json:"adults,omitempty" jsonschema:"title=adults,default=1,description=Number of adults. Default to 1."`
	// Children is the number of children. Default to 0.
	Children int `json:"children,omitempty" jsonschema:"title=children,default=0,description=Number of children. Default to 0."`
	// Rooms is the number of rooms. Default to 1.
	Rooms int `json:"rooms,omitempty" jsonschema:"title=rooms,default=1,description=Number of rooms. Default to 1."`
	// HotelClass includes only certain hotel classes in the results, comma separated. for example- 2,3,4
	HotelClass string `json:"hotel_class,omitempty" jsonschema:"title=hotel_class,description=Include only certain hotel classes in the results, comma separated. for example- 2,3,4"`
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Rate is a price quote for a stay.
type Rate struct {
	// Lowest is the formatted lowest price, e.g. "$120".
	Lowest string `json:"lowest,omitempty"`
	// ExtractedLowest is the numeric lowest price.
	ExtractedLowest float64 `json:"extracted_lowest,omitempty"`
}

// Property is one accommodation listing.
type Property struct {
	Name          string   `json:"name,omitempty"`
	Type          string   `json:"type,omitempty"`
	Description   string   `json:"description,omitempty"`
	Link          string   `json:"link,omitempty"`
	RatePerNight  *Rate    `json:"rate_per_night,omitempty"`
	TotalRate     *Rate    `json:"total_rate,omitempty"`
	OverallRating float64  `json:"overall_rating,omitempty"`
	Reviews       int      `json:"reviews,omitempty"`
	HotelClass    int      `json:"extracted_hotel_class,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
}

// Output is the schema for hotel search results.
type Output struct {
	schema.Base
	// Properties is the list of found accommodation listings.
	Properties []Property `json:"properties,omitempty" jsonschema:"title=properties,description=List of found accommodation listings."`
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

// Tool searches accommodation with the Google Hotels engine.
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
		ret.SetTitle("HotelSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Find hotels and other accommodation in a location using the Google Hotels engine.")
	}
	if ret.currency == "" {
		ret.currency = "USD"
	}
	if ret.maxResults == 0 {
		ret.maxResults = 5
	}
	return ret
}

// Run executes the hotel search synchronously with the given parameters.
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
	properties := make([]Property, 0, t.maxResults)
	for _, item := range gjson.GetBytes(body, "properties").Array() {
		if len(properties) >= t.maxResults {
			break
		}
		var property Property
		if err := json.Unmarshal([]byte(item.Raw), &property); err != nil {
			return err
		}
		properties = append(properties, property)
	}
	output.Properties = properties
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
