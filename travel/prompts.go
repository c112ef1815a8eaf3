package travel

import (
	"fmt"

	"github.com/voyagent/voyagent/components/systemprompt/cot"
	"github.com/voyagent/voyagent/tools"
)

// routerPrompt instructs the routing agent: decide between a direct answer
// and one of the two search tools, and extract the tool parameters.
func routerPrompt(flightsTool, hotelsTool tools.ITool) *cot.Generator {
	return cot.New(
		cot.WithBackground([]string{
			"- You are a smart travel agency. Use the tools to look up information.",
			fmt.Sprintf("- %s: %s", ActionSearchFlights, flightsTool.Description()),
			fmt.Sprintf("- %s: %s", ActionSearchHotels, hotelsTool.Description()),
		}),
		cot.WithSteps([]string{
			"- Decide whether the user's message needs a flight search, a hotel search, or can be answered directly.",
			"- When a search is needed, extract the search parameters from the whole conversation. The default trip is a round trip (1), while one way is 2 and multi-city is 3.",
			"- If you need to look up some information before asking a follow up question, you are allowed to do that.",
			"- When required search parameters are missing and cannot be looked up, answer directly with a follow up question asking for them.",
		}),
		cot.WithOutputInstructs([]string{
			"- Set action to search_flights or search_hotels together with the matching parameters object, or set action to answer together with the reply text.",
			"- Never set more than one parameters object.",
		}),
	)
}

// composerPrompt instructs the composing agent: turn search results sitting
// in the conversation into a useful reply.
func composerPrompt() *cot.Generator {
	return cot.New(
		cot.WithBackground([]string{
			"- You are a smart travel agency composing the final reply to the user.",
			"- The conversation contains the search results for the user's request.",
		}),
		cot.WithSteps([]string{
			"- Read the search results provided in the conversation.",
			"- Analyze the data and pick the options that fit the user's request best.",
		}),
		cot.WithOutputInstructs([]string{
			"- DO NOT mention the raw search results or data to the user - instead, analyze the data and provide useful summaries and recommendations based on it.",
			"- Format the reply in markdown.",
			"- Suggest up to 3 follow-up questions the user might ask next.",
		}),
	)
}
