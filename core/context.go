package core

import "context"

// Context keys for update options
type contextKey string

const runIDKey contextKey = "runID"

// withRunID attaches the run history id to the context.
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the run history id from context, or 0 when untracked.
func getRunID(ctx context.Context) int64 {
	val := ctx.Value(runIDKey)
	if val == nil {
		return 0
	}
	runID, ok := val.(int64)
	if !ok {
		return 0
	}
	return runID
}
