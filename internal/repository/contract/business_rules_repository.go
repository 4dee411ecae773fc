package contract

import "context"

type BusinessRulesRepository interface {
	// Get returns the single rules slot, or ("", nil) when none is stored
	// yet; the caller substitutes its default.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, content string) error
}
