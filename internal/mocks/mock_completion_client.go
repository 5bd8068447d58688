package mocks

import (
	"context"

	"github.com/soumyachk101/HealthTrack-Server/domain"
)

// MockCompletionClient implements domain.CompletionClient for testing
type MockCompletionClient struct {
	CompleteFunc func(ctx context.Context, model, systemPrompt, userMessage string) (string, error)

	// ModelsTried records the model of every Complete call, in order.
	ModelsTried []string
}

// NewMockCompletionClient creates a new MockCompletionClient
func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{}
}

func (m *MockCompletionClient) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	m.ModelsTried = append(m.ModelsTried, model)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, model, systemPrompt, userMessage)
	}
	return "mock reply", nil
}

// Compile-time interface compliance verification
var _ domain.CompletionClient = (*MockCompletionClient)(nil)
