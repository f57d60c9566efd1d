package ports

import "context"

// CompletionClient performs one chat completion: a system message carrying
// instruction followed by a user message carrying userContent.
type CompletionClient interface {
	Complete(ctx context.Context, userContent, instruction string) (string, error)
}
