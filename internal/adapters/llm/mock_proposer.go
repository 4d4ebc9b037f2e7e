package llm

import (
	"context"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
)

// MockProposer returns a canned result or error, for tests and offline runs.
type MockProposer struct {
	Result domain.AssignmentResult
	Err    error

	// LastPrompt and Examples record the most recent call.
	LastPrompt string
	Examples   []ports.RouteExample
}

func (m *MockProposer) Propose(
	ctx context.Context,
	examples []ports.RouteExample,
	req domain.AssignmentRequest,
) (domain.AssignmentResult, error) {
	m.LastPrompt = BuildPrompt(examples, req)
	m.Examples = examples
	if m.Err != nil {
		return domain.AssignmentResult{}, m.Err
	}
	return m.Result, nil
}
