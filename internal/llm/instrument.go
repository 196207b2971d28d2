package llm

import (
	"context"
	"time"

	"bidwriter/internal/metrics"
)

type instrumented struct {
	inner     Client
	operation string
}

// Instrumented wraps a client so every call is counted and timed under the
// given operation label.
func Instrumented(inner Client, operation string) Client {
	return &instrumented{inner: inner, operation: operation}
}

func (c *instrumented) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := c.inner.Complete(ctx, req)
	metrics.ObserveLLMCall(c.operation, time.Since(start), err)
	return out, err
}
