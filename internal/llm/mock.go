package llm

import "context"

// MockClient is a function-backed Client for tests.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req Request) (string, error)
	Calls        []Request
}

// Complete records the request and delegates to CompleteFunc.
func (m *MockClient) Complete(ctx context.Context, req Request) (string, error) {
	m.Calls = append(m.Calls, req)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

var _ Client = (*MockClient)(nil)
