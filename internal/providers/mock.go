package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockGeneratorName = "mock"

// MockGenerator is a Generator for testing.
type MockGenerator struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailOnCall   int // Fail only the Nth call (1-based, 0 = never)
	ResponseText string
	// Responses, when set, are returned in order; the last one repeats.
	Responses []string

	// State
	requestCount atomic.Int64
}

// NewMockGenerator creates a mock generator with sensible defaults.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		ResponseText: "mock generated text",
	}
}

// Name returns the client identifier.
func (m *MockGenerator) Name() string { return MockGeneratorName }

// Calls returns how many Generate calls have been made.
func (m *MockGenerator) Calls() int {
	return int(m.requestCount.Load())
}

// Generate returns the configured response or failure.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	count := int(m.requestCount.Add(1))

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.ShouldFail {
		return "", fmt.Errorf("mock generator configured to fail")
	}
	if m.FailOnCall > 0 && count == m.FailOnCall {
		return "", fmt.Errorf("mock generator failed call %d", count)
	}

	if len(m.Responses) > 0 {
		idx := count - 1
		if idx >= len(m.Responses) {
			idx = len(m.Responses) - 1
		}
		return m.Responses[idx], nil
	}
	return m.ResponseText, nil
}
