package services

import "context"

type contextKey string

const (
	utteranceIDKey contextKey = "utterance_id"
	componentKey   contextKey = "component"
	runIDKey       contextKey = "run_id"
)

// WithUtteranceID annotates context with the utterance being processed.
func WithUtteranceID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, utteranceIDKey, id)
}

// UtteranceIDFromContext extracts the utterance identifier if present.
func UtteranceIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(utteranceIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithComponent annotates context with the evaluation component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(componentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with the evaluation run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the evaluation run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
