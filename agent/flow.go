package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/trials-agent/memory"
	"github.com/SaiNageswarS/trials-agent/schema"
	"go.uber.org/zap"
)

type Stage int

const (
	StageStart Stage = iota
	StageValidating
	StageRetrieving
	StageReranking
	StageAnswering
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageValidating:
		return "validating"
	case StageRetrieving:
		return "retrieving"
	case StageReranking:
		return "reranking"
	case StageAnswering:
		return "answering"
	case StageDone:
		return "done"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// turnFacts is what the transitions of one turn depend on.
type turnFacts struct {
	valid     bool
	followup  bool
	retrieved int
}

// nextStage is the transition function of the turn state machine.
func nextStage(stage Stage, facts turnFacts) (Stage, error) {
	switch stage {
	case StageStart:
		return StageValidating, nil
	case StageValidating:
		if facts.valid && !facts.followup {
			return StageRetrieving, nil
		}
		return StageAnswering, nil
	case StageRetrieving:
		if facts.retrieved > 0 {
			return StageReranking, nil
		}
		return StageAnswering, nil
	case StageReranking:
		return StageAnswering, nil
	case StageAnswering:
		return StageDone, nil
	case StageDone:
		return StageDone, errors.New("no transition out of done")
	default:
		return StageDone, fmt.Errorf("unknown stage %d", int(stage))
	}
}

type TurnResult struct {
	Answer         string
	State          *memory.ConversationState
	Stages         []Stage
	ProcessingTime time.Duration
}

// Turn runs one conversation turn on a copy of state and returns the updated copy.
// On error the caller's state is unchanged.
func (a *Agent) Turn(ctx context.Context, reporter ProgressReporter, state *memory.ConversationState, message string) (*TurnResult, error) {
	start := time.Now()
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}
	if a.config.BigModel == nil {
		return nil, errors.New("agent has no language model configured")
	}

	working := memory.NewConversationState("")
	if state != nil {
		working = state.Clone()
	}

	facts := turnFacts{followup: working.HasRetrieval()}
	working.IsValidRequest = memory.ValidityUnknown
	working.AddUserMessage(message)

	var answer string
	stages := []Stage{}
	stage := StageStart

	for {
		next, err := nextStage(stage, facts)
		if err != nil {
			return nil, err
		}
		stage = next
		if stage == StageDone {
			break
		}
		stages = append(stages, stage)

		switch stage {
		case StageValidating:
			valid, err := a.validator.Validate(ctx, message)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", stage, err)
			}
			facts.valid = valid
			working.IsValidRequest = memory.ValidityOf(valid)
			a.send(reporter, NewProgressUpdate(schema.StepValidateRequest, "Request validated"))

		case StageRetrieving:
			found, err := a.retriever.Retrieve(ctx, message)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", stage, err)
			}
			facts.retrieved = len(found)
			// an empty retrieval is stored as absent so the next question retrieves again
			working.RetrievedTrials = nil
			if len(found) > 0 {
				working.RetrievedTrials = found
			}
			working.TopRerankedIDs = nil
			a.send(reporter, NewProgressUpdate(schema.StepQueryTrials, fmt.Sprintf("Found %d clinical trials", len(found))))

		case StageReranking:
			ids, err := a.reranker.Rerank(ctx, message, working.RetrievedTrials)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", stage, err)
			}
			working.TopRerankedIDs = ids
			a.send(reporter, NewProgressUpdate(schema.StepRerankResults, fmt.Sprintf("Selected %d relevant trials", len(ids))))
			a.send(reporter, NewTrialsUpdate(working.TopTrials()))

		case StageAnswering:
			answer, err = a.synthesizer.Answer(ctx, working, func(chunk string) error {
				a.send(reporter, NewAnswerChunk(chunk))
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("%s: %w", stage, err)
			}
			a.send(reporter, NewProgressUpdate(schema.StepPrepareAnswer, "Answer prepared"))
		}
	}

	return &TurnResult{
		Answer:         answer,
		State:          working,
		Stages:         stages,
		ProcessingTime: time.Since(start),
	}, nil
}

// send never fails the turn; observers are best effort.
func (a *Agent) send(reporter ProgressReporter, chunk *schema.AgentStreamChunk) {
	if err := reporter.Send(chunk); err != nil {
		logger.Error("Failed to send progress", zap.Error(err))
	}
}
