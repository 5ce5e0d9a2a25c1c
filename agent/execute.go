package agent

import (
	"context"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/trials-agent/memory"
	"github.com/SaiNageswarS/trials-agent/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Execute runs one turn for a stored session: it loads the session, runs the
// turn, saves the updated state and reports completion or failure.
func (a *Agent) Execute(ctx context.Context, reporter ProgressReporter, req *schema.GenerateAnswerRequest) (*schema.StreamComplete, error) {
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}

	if strings.TrimSpace(req.Question) == "" {
		a.send(reporter, NewStreamError(ErrEmptyQuestion.Error(), ErrorCode(ErrEmptyQuestion)))
		return nil, ErrEmptyQuestion
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state := memory.NewConversationState(sessionID)
	if a.config.ConversationManager != nil {
		state = a.config.ConversationManager.LoadSession(ctx, sessionID)
	}

	result, err := a.Turn(ctx, reporter, state, req.Question)
	if err != nil {
		logger.Error("Failed to run turn", zap.String("sessionId", sessionID), zap.Error(err))
		a.send(reporter, NewStreamError(err.Error(), ErrorCode(err)))
		return nil, err
	}

	if a.config.ConversationManager != nil {
		// the answer has already been streamed; a lost save does not fail the turn
		if err := a.config.ConversationManager.SaveSession(ctx, result.State); err != nil {
			logger.Error("Failed to save session", zap.String("sessionId", sessionID), zap.Error(err))
		}
	}

	stages := make([]string, 0, len(result.Stages))
	for _, s := range result.Stages {
		stages = append(stages, s.String())
	}

	topIDs := []string{}
	topIDs = append(topIDs, result.State.TopRerankedIDs...)

	response := &schema.StreamComplete{
		SessionID:      sessionID,
		Answer:         result.Answer,
		Stages:         stages,
		TopTrialIDs:    topIDs,
		ProcessingTime: result.ProcessingTime.Milliseconds(),
		Metadata:       map[string]string{"model": a.config.BigModel.GetModel()},
	}

	a.send(reporter, NewStreamComplete(response))
	return response, nil
}
