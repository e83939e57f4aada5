package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a scripted client for tests: replies are returned in order,
// and every request is recorded.
type MockClient struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []CompletionRequest
}

// NewMockClient returns a client that yields the given replies in order,
// repeating the last one once exhausted.
func NewMockClient(replies ...string) *MockClient {
	return &MockClient{replies: replies}
}

// NewFailingMockClient returns a client whose every call fails with err.
func NewFailingMockClient(err error) *MockClient {
	return &MockClient{err: err}
}

func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.replies) == 0 {
		return nil, fmt.Errorf("mock client has no replies")
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return &CompletionResponse{Content: reply, Model: "mock"}, nil
}

// Requests returns a copy of every request seen so far.
func (m *MockClient) Requests() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
