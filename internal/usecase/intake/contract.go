package intake

import "context"

// Console asks the operator for answers.
type Console interface {
	Prompt(ctx context.Context, label string) (string, error)
	PromptOptional(ctx context.Context, label string) (string, error)
}
