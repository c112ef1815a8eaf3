package tools

import (
	"context"

	"github.com/voyagent/voyagent/schema"
)

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
}

// Tool is a typed external capability the agent can invoke.
type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I, *O) error
}

// OrchestrationTool is a tool invokable with an untyped payload, used when
// the concrete tool is selected at runtime.
type OrchestrationTool interface {
	ITool
	RunOrchestration(context.Context, any) (any, error)
}
