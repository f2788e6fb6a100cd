package remote

import "context"

// Invoker executes a named remote function with a JSON payload and
// returns the decoded top-level response envelope. Implementations own
// transport concerns only; body unwrapping and normalization happen in
// the Client.
type Invoker interface {
	Invoke(ctx context.Context, function string, payload any) (map[string]any, error)
}
