// Package schema holds the request and stream chunk types exchanged with
// callers of the agent.
package schema

type GenerateAnswerRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

// Step names a completed pipeline step in a progress update.
type Step string

const (
	StepValidateRequest Step = "validate_request"
	StepQueryTrials     Step = "query_clinical_trials_gov"
	StepRerankResults   Step = "rerank_results"
	StepPrepareAnswer   Step = "prepare_answer"
)

// AgentStreamChunk carries exactly one of its fields.
type AgentStreamChunk struct {
	ProgressUpdate *ProgressUpdateChunk `json:"progressUpdate,omitempty"`
	Trials         *TrialsChunk         `json:"trials,omitempty"`
	Answer         *AnswerChunk         `json:"answer,omitempty"`
	Complete       *StreamComplete      `json:"complete,omitempty"`
	Error          *StreamError         `json:"error,omitempty"`
}

type ProgressUpdateChunk struct {
	Step           Step   `json:"step"`
	Timestamp      int64  `json:"timestamp"`
	Message        string `json:"message"`
	EstimatedSteps int32  `json:"estimatedSteps"`
}

// TrialCard is the display form of a trial selected for the answer.
type TrialCard struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

type TrialsChunk struct {
	Trials []TrialCard `json:"trials"`
}

type AnswerChunk struct {
	Content string `json:"content"`
}

type StreamComplete struct {
	SessionID      string            `json:"sessionId"`
	Answer         string            `json:"answer"`
	Stages         []string          `json:"stages"`
	TopTrialIDs    []string          `json:"topTrialIds"`
	ProcessingTime int64             `json:"processingTime"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type StreamError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

func (c *AgentStreamChunk) GetProgressUpdate() *ProgressUpdateChunk {
	if c == nil {
		return nil
	}
	return c.ProgressUpdate
}

func (c *AgentStreamChunk) GetTrials() *TrialsChunk {
	if c == nil {
		return nil
	}
	return c.Trials
}

func (c *AgentStreamChunk) GetAnswer() *AnswerChunk {
	if c == nil {
		return nil
	}
	return c.Answer
}

func (c *AgentStreamChunk) GetComplete() *StreamComplete {
	if c == nil {
		return nil
	}
	return c.Complete
}

func (c *AgentStreamChunk) GetError() *StreamError {
	if c == nil {
		return nil
	}
	return c.Error
}
