package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/trials-agent/agent"
	"github.com/SaiNageswarS/trials-agent/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

const AskToolName = "ask_clinical_trials"

type TurnExecutor interface {
	Execute(ctx context.Context, reporter agent.ProgressReporter, req *schema.GenerateAnswerRequest) (*schema.StreamComplete, error)
}

type AskHandler struct {
	executor TurnExecutor
}

func ProvideAskHandler(executor TurnExecutor) *AskHandler {
	return &AskHandler{executor: executor}
}

// Tool describes the MCP tool served by Handle.
func (h *AskHandler) Tool() mcp.Tool {
	return mcp.NewTool(AskToolName,
		mcp.WithDescription("Answers questions about completed clinical trials with results, grounded in ClinicalTrials.gov. "+
			"Pass the returned sessionId back as session_id to ask follow-up questions about the same trials."),
		mcp.WithString("question",
			mcp.Description("The question about clinical trials"),
			mcp.Required(),
		),
		mcp.WithString("session_id",
			mcp.Description("Session id from a previous answer; omit to start a new conversation"),
		),
	)
}

func (h *AskHandler) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question := req.GetString("question", "")
	if question == "" {
		return mcp.NewToolResultError("No question provided"), nil
	}

	sessionID := req.GetString("session_id", "")
	logger.Info("Received question", zap.String("sessionId", sessionID), zap.String("question", question))

	resp, err := h.executor.Execute(ctx, &agent.NoOpProgressReporter{}, &schema.GenerateAnswerRequest{
		SessionID: sessionID,
		Question:  question,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", agent.ErrorCode(err), err.Error())), nil
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}
