package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/schema"
	"github.com/SaiNageswarS/trials-agent/trials"
)

// MockProgressReporter implements ProgressReporter for testing
type MockProgressReporter struct {
	mu     sync.Mutex
	events []*schema.AgentStreamChunk
	err    error
}

func (m *MockProgressReporter) Send(event *schema.AgentStreamChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *MockProgressReporter) GetEvents() []*schema.AgentStreamChunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*schema.AgentStreamChunk(nil), m.events...)
}

func (m *MockProgressReporter) answerFragments() []string {
	var out []string
	for _, e := range m.GetEvents() {
		if a := e.GetAnswer(); a != nil {
			out = append(out, a.Content)
		}
	}
	return out
}

func (m *MockProgressReporter) steps() []schema.Step {
	var out []schema.Step
	for _, e := range m.GetEvents() {
		if p := e.GetProgressUpdate(); p != nil {
			out = append(out, p.Step)
		}
	}
	return out
}

// testLLMClient replays scripted fragments, one list per call.
type testLLMClient struct {
	model     string
	responses [][]string
	err       error

	mu    sync.Mutex
	calls [][]llm.Message
}

func scripted(model string, responses ...[]string) *testLLMClient {
	return &testLLMClient{model: model, responses: responses}
}

func (m *testLLMClient) GenerateInference(
	ctx context.Context,
	messages []llm.Message,
	callback func(chunk string) error,
	opts ...llm.LLMOption,
) error {
	m.mu.Lock()
	idx := len(m.calls)
	m.calls = append(m.calls, append([]llm.Message(nil), messages...))
	m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if idx >= len(m.responses) {
		return errors.New("unexpected inference call")
	}

	for _, fragment := range m.responses[idx] {
		if err := callback(fragment); err != nil {
			return err
		}
	}
	return nil
}

func (m *testLLMClient) GetModel() string {
	return m.model
}

func (m *testLLMClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *testLLMClient) call(i int) []llm.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[i]
}

type fakeProvider struct {
	trials []trials.Trial
	err    error

	mu      sync.Mutex
	queries []trials.Query
}

func (p *fakeProvider) Fetch(ctx context.Context, q trials.Query) ([]trials.Trial, error) {
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()

	if p.err != nil {
		return nil, p.err
	}
	if _, err := q.Values(); err != nil {
		return nil, err
	}
	return append([]trials.Trial(nil), p.trials...), nil
}

func (p *fakeProvider) queryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queries)
}

func backPainTrials() []trials.Trial {
	return []trials.Trial{
		{ID: "NCT00000001", Title: "Ibuprofen and caffeine for acute low back pain", Summary: "Randomized trial.", Results: []byte(`{"outcomeMeasuresModule":{"pain":"reduced"}}`)},
		{ID: "NCT00000002", Title: "Ibuprofen alone for back pain", Summary: "Open label.", Results: []byte(`{"outcomeMeasuresModule":{"pain":"similar"}}`)},
		{ID: "NCT00000003", Title: "Physiotherapy for sciatica", Summary: "Observational.", Results: []byte(`{"outcomeMeasuresModule":{}}`)},
		{ID: "NCT00000004", Title: "Caffeine tolerance", Summary: "Crossover.", Results: []byte(`{"adverseEventsModule":{}}`)},
	}
}

const extractedQuery = "```json\n{\"query.cond\": \"back pain\", \"query.intr\": \"ibuprofen AND caffeine\"}\n```"
