package orchestration

import (
	"context"
	"errors"

	"github.com/voyagent/voyagent/schema"
	"github.com/voyagent/voyagent/tools"
)

// ToolSelector returns the tool to run and its payload for a given routing
// schema.
type ToolSelector[I schema.Schema] func(req *I) (tools.OrchestrationTool, any, error)

// Tool delegates to one of several concrete tools based on a routing schema.
type Tool[I schema.Schema] struct {
	tools.Config
	selector ToolSelector[I]
}

func New[I schema.Schema](selector ToolSelector[I], opts ...tools.Option) *Tool[I] {
	ret := new(Tool[I])
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("OrchestrationTool")
	}
	ret.selector = selector
	return ret
}

// RunOrchestration selects a tool with the configured selector and runs it.
func (t *Tool[I]) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*I)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	tool, params, err := t.selector(in)
	if err != nil {
		return nil, err
	}
	return tool.RunOrchestration(ctx, params)
}
