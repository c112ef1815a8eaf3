// Package travel wires the routing and composing agents together with the
// flight and hotel search tools into a single conversational planner.
package travel

import (
	"context"
	"errors"
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	"github.com/rs/zerolog"

	"github.com/voyagent/voyagent/agents"
	"github.com/voyagent/voyagent/components"
	"github.com/voyagent/voyagent/schema"
	"github.com/voyagent/voyagent/tools"
	"github.com/voyagent/voyagent/tools/flights"
	"github.com/voyagent/voyagent/tools/hotels"
	"github.com/voyagent/voyagent/tools/orchestration"
)

// Config carries the planner dependencies and model settings.
type Config struct {
	client       instructor.Instructor
	memory       *components.Memory
	flightsTool  *flights.Tool
	hotelsTool   *hotels.Tool
	model        string
	temperature  float32
	maxTokens    int
	tokenCounter components.TokenCounter
	logger       zerolog.Logger
}

type Option func(c *Config)

func WithClient(clt instructor.Instructor) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithFlightsTool(t *flights.Tool) Option {
	return func(c *Config) {
		c.flightsTool = t
	}
}

func WithHotelsTool(t *hotels.Tool) Option {
	return func(c *Config) {
		c.hotelsTool = t
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithTokenCounter(tc components.TokenCounter) Option {
	return func(c *Config) {
		c.tokenCounter = tc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// Planner relays one chat turn through the hosted model: a routing agent
// decides whether a search is needed, the selected tool runs at most once,
// and a composing agent folds the result into the final reply. All
// decision-making lives in the model; the planner only wires transcript and
// tools together.
type Planner struct {
	router   *agents.Agent[schema.Input, RouterOutput]
	composer *agents.Agent[schema.Input, schema.Output]
	selector *orchestration.Tool[RouterOutput]
	memory   *components.Memory
	counter  components.TokenCounter
	logger   zerolog.Logger
}

// New returns a Planner for the given client and tools.
func New(opts ...Option) *Planner {
	cfg := new(Config)
	cfg.logger = zerolog.Nop()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.memory == nil {
		cfg.memory = components.NewMemory(0)
	}
	if cfg.tokenCounter == nil {
		cfg.tokenCounter = components.WordTokenCounter{}
	}
	agentOptions := []agents.Option{
		agents.WithClient(cfg.client),
		agents.WithMemory(cfg.memory),
		agents.WithModel(cfg.model),
		agents.WithTemperature(cfg.temperature),
		agents.WithMaxTokens(cfg.maxTokens),
	}
	router := agents.NewAgent[schema.Input, RouterOutput](append(agentOptions,
		agents.WithName("TravelRouter"),
		agents.WithSystemPromptGenerator(routerPrompt(cfg.flightsTool, cfg.hotelsTool)))...)
	composer := agents.NewAgent[schema.Input, schema.Output](append(agentOptions,
		agents.WithName("TravelComposer"),
		agents.WithSystemPromptGenerator(composerPrompt()))...)
	selector := orchestration.New(selectTool(cfg.flightsTool, cfg.hotelsTool),
		tools.WithTitle("TravelSearchTool"))
	return &Planner{
		router:   router,
		composer: composer,
		selector: selector,
		memory:   cfg.memory,
		counter:  cfg.tokenCounter,
		logger:   cfg.logger,
	}
}

// selectTool maps the router's decision onto a concrete search tool.
func selectTool(flightsTool *flights.Tool, hotelsTool *hotels.Tool) orchestration.ToolSelector[RouterOutput] {
	return func(req *RouterOutput) (tools.OrchestrationTool, any, error) {
		switch req.Action {
		case ActionSearchFlights:
			if req.Flights == nil {
				return nil, nil, errors.New("missing flight search parameters")
			}
			return flightsTool, req.Flights, nil
		case ActionSearchHotels:
			if req.Hotels == nil {
				return nil, nil, errors.New("missing hotel search parameters")
			}
			return hotelsTool, req.Hotels, nil
		}
		return nil, nil, fmt.Errorf("no tool for action %q", req.Action)
	}
}

// Memory exposes the agent transcript.
func (p *Planner) Memory() *components.Memory {
	return p.memory
}

// ResetMemory drops the transcript.
func (p *Planner) ResetMemory() {
	p.memory.Reset()
}

// Run relays one user turn. When the router decides to answer, its reply is
// returned without a second model call; otherwise the selected tool output
// is appended to the transcript as a system message and the composer
// produces the final reply.
func (p *Planner) Run(ctx context.Context, input *schema.Input, output *schema.Output, apiResp *components.ApiResponse) error {
	decision := new(RouterOutput)
	if err := p.router.Run(ctx, input, decision, apiResp); err != nil {
		return fmt.Errorf("routing failed: %w", err)
	}
	p.logger.Debug().
		Str("action", decision.Action).
		Int("transcript_tokens", p.memory.TokenCount(p.counter)).
		Msg("routed user turn")
	if decision.Action == ActionAnswer || decision.Action == "" {
		if decision.Answer == "" {
			return errors.New("model returned neither an answer nor a tool call")
		}
		output.ChatMessage = decision.Answer
		return nil
	}
	result, err := p.selector.RunOrchestration(ctx, decision)
	if err != nil {
		return fmt.Errorf("%s failed: %w", decision.Action, err)
	}
	content, ok := result.(schema.Schema)
	if !ok {
		return errors.New("invalid tool output schema")
	}
	p.memory.NewMessage(components.SystemRole, content)
	composerResp := new(components.ApiResponse)
	if err := p.composer.Run(ctx, nil, output, composerResp); err != nil {
		return fmt.Errorf("composing failed: %w", err)
	}
	if apiResp != nil {
		routerUsage := apiResp.Usage
		*apiResp = *composerResp
		if apiResp.Usage == nil {
			apiResp.Usage = new(components.ApiUsage)
		}
		apiResp.Usage.Merge(routerUsage)
	}
	return nil
}
