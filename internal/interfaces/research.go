package interfaces

import (
	"context"
)

// ModelSource is one web source reference returned by the transport's
// grounding metadata.
type ModelSource struct {
	URI   string
	Title string
}

// ModelResponse is the raw payload of a single one-shot model call: the text
// body plus optional grounding side-channel data.
type ModelResponse struct {
	Text string
	// Sources are the grounding references, in the order the transport
	// reported them. May contain duplicates; callers deduplicate.
	Sources []ModelSource
	// SearchEntryPointHTML is the transport's renderable search entry point
	// widget, when provided.
	SearchEntryPointHTML string
}

// ResearchProvider is the model transport collaborator: a one-shot
// request/response call carrying a natural-language instruction with a
// web-search tool directive. All three query shapes (deep dive, trending,
// calendar) use the same contract.
type ResearchProvider interface {
	Generate(ctx context.Context, prompt string) (*ModelResponse, error)
	Close() error
}
