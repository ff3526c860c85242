package chat

import "context"

// MockClient is a test double for the Client interface.
type MockClient struct {
	Reply string
	Err   error
	Calls [][]Message // records the message lists sent
}

// Complete records the call and returns the mock reply.
func (m *MockClient) Complete(ctx context.Context, messages []Message) (string, error) {
	m.Calls = append(m.Calls, messages)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Reply, m.Err
}
