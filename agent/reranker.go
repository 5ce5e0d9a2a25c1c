package agent

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/prompts"
	"github.com/SaiNageswarS/trials-agent/trials"
	"go.uber.org/zap"
)

const maxRerankedTrials = 3

// Reranker picks up to three candidate trials most relevant to a message.
type Reranker struct {
	client llm.LLMClient
}

func NewReranker(client llm.LLMClient) *Reranker {
	return &Reranker{client: client}
}

func (r *Reranker) Rerank(ctx context.Context, message string, candidates []trials.Trial) ([]string, error) {
	if len(candidates) == 0 {
		return nil, ErrRerankPrecondition
	}

	lines := make([]string, 0, len(candidates))
	for _, t := range candidates {
		lines = append(lines, t.Headline())
	}

	prompt, err := prompts.RenderRerankPrompt(message, strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("failed to render rerank prompt: %w", err)
	}

	var response strings.Builder
	err = r.client.GenerateInference(ctx,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		llm.WithTemperature(0),
		llm.WithMaxTokens(200),
	)
	if err != nil {
		return nil, fmt.Errorf("rerank inference failed: %w", err)
	}

	ids, err := parseRerankedIDs(ctx, response.String(), candidates)
	if err != nil {
		return nil, err
	}

	logger.Info("Reranked trials", zap.Strings("ids", ids))
	return ids, nil
}

// parseRerankedIDs keeps identifiers that name a candidate, in reply order,
// without duplicates and at most maxRerankedTrials of them.
func parseRerankedIDs(ctx context.Context, response string, candidates []trials.Trial) ([]string, error) {
	candidateIDs := ds.NewSet[string]()
	for _, t := range candidates {
		candidateIDs.Add(t.ID)
	}

	tokens := strings.FieldsFunc(response, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	matched, err := linq.Pipe3(
		linq.FromSlice(ctx, tokens),

		linq.Select(func(token string) string {
			return strings.ToUpper(strings.Trim(token, "[](){}\"'`.*;:"))
		}),

		linq.Where(func(id string) bool {
			return candidateIDs.Contains(id)
		}),

		linq.ToSlice[string](),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reranked ids: %w", err)
	}

	seen := ds.NewSet[string]()
	ids := []string{}
	for _, id := range matched {
		if seen.Contains(id) {
			continue
		}
		seen.Add(id)
		ids = append(ids, id)
		if len(ids) == maxRerankedTrials {
			break
		}
	}

	return ids, nil
}
