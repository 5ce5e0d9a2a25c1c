package agent

import (
	"context"
	"time"

	"github.com/SaiNageswarS/trials-agent/schema"
	"github.com/SaiNageswarS/trials-agent/trials"
)

const trialURLPrefix = "https://clinicaltrials.gov/study/"

// ProgressReporter is an interface for reporting agent execution progress
type ProgressReporter interface {
	// Send sends a progress update
	Send(event *schema.AgentStreamChunk) error
}

// NoOpProgressReporter implements ProgressReporter with no-op operations
type NoOpProgressReporter struct{}

// Send does nothing
func (r *NoOpProgressReporter) Send(event *schema.AgentStreamChunk) error {
	return nil
}

// FuncProgressReporter adapts a function to ProgressReporter.
type FuncProgressReporter func(event *schema.AgentStreamChunk) error

func (f FuncProgressReporter) Send(event *schema.AgentStreamChunk) error {
	return f(event)
}

// ChannelProgressReporter delivers events on a buffered channel. Send blocks
// while the buffer is full and fails once ctx is done.
type ChannelProgressReporter struct {
	ctx    context.Context
	events chan *schema.AgentStreamChunk
}

func NewChannelProgressReporter(ctx context.Context, buffer int) *ChannelProgressReporter {
	return &ChannelProgressReporter{
		ctx:    ctx,
		events: make(chan *schema.AgentStreamChunk, buffer),
	}
}

func (r *ChannelProgressReporter) Send(event *schema.AgentStreamChunk) error {
	select {
	case r.events <- event:
		return nil
	case <-r.ctx.Done():
		return r.ctx.Err()
	}
}

func (r *ChannelProgressReporter) Events() <-chan *schema.AgentStreamChunk {
	return r.events
}

// Close must be called once, after the last Send.
func (r *ChannelProgressReporter) Close() {
	close(r.events)
}

// Helper functions for creating progress events
func NewProgressUpdate(step schema.Step, message string) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		ProgressUpdate: &schema.ProgressUpdateChunk{
			Step:           step,
			Timestamp:      time.Now().UnixMilli(),
			Message:        message,
			EstimatedSteps: 4,
		},
	}
}

// NewTrialsUpdate lists the trials an answer will be grounded on.
func NewTrialsUpdate(selected []trials.Trial) *schema.AgentStreamChunk {
	cards := make([]schema.TrialCard, 0, len(selected))
	for _, t := range selected {
		cards = append(cards, schema.TrialCard{
			ID:      t.ID,
			Title:   t.Title,
			Summary: t.Summary,
			URL:     trialURLPrefix + t.ID,
		})
	}

	return &schema.AgentStreamChunk{
		Trials: &schema.TrialsChunk{Trials: cards},
	}
}

// NewAnswerChunk creates an AnswerChunk
func NewAnswerChunk(content string) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Answer: &schema.AnswerChunk{Content: content},
	}
}

// NewStreamComplete creates a StreamComplete chunk
func NewStreamComplete(finalResponse *schema.StreamComplete) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Complete: finalResponse,
	}
}

// NewStreamError creates a StreamError chunk
func NewStreamError(message, code string) *schema.AgentStreamChunk {
	return &schema.AgentStreamChunk{
		Error: &schema.StreamError{
			ErrorMessage: message,
			ErrorCode:    code,
		},
	}
}
