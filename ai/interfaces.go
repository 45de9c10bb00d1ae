package ai

import "context"

// ProviderClient is a thin per-provider caller. Implementations send a
// single prompt to their backend and return the raw model text.
// Implementations must be thread-safe for concurrent use.
type ProviderClient interface {
	// Call sends the prompt and returns the raw response text.
	// Cancellation is honored through ctx: an aborted context aborts
	// the in-flight network call. Errors are always *Failure values,
	// never provider-specific types.
	Call(ctx context.Context, prompt string) (string, error)
}

// ModelLister is a side-channel status probe exposed by daemon-backed
// providers. It is used only by configuration surfaces, never on the
// request hot path.
type ModelLister interface {
	// ListModels returns the names of locally installed models.
	ListModels(ctx context.Context) ([]string, error)

	// IsRunning reports whether the daemon is reachable at all.
	IsRunning(ctx context.Context) bool
}
