package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/prompts"
	"github.com/SaiNageswarS/trials-agent/trials"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// EvidenceProvider fetches trials matching a query.
type EvidenceProvider interface {
	Fetch(ctx context.Context, q trials.Query) ([]trials.Trial, error)
}

// Retriever turns a message into a structured registry query and runs it once.
type Retriever struct {
	client   llm.LLMClient
	provider EvidenceProvider
}

func NewRetriever(client llm.LLMClient, provider EvidenceProvider) *Retriever {
	return &Retriever{client: client, provider: provider}
}

func (r *Retriever) Retrieve(ctx context.Context, message string) ([]trials.Trial, error) {
	prompt, err := prompts.RenderQueryExtractionPrompt(message, queryAreas())
	if err != nil {
		return nil, fmt.Errorf("failed to render query extraction prompt: %w", err)
	}

	var response strings.Builder
	err = r.client.GenerateInference(ctx,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		llm.WithTemperature(0),
		llm.WithMaxTokens(1000),
	)
	if err != nil {
		return nil, fmt.Errorf("query extraction inference failed: %w", err)
	}

	query, err := parseStructuredQuery(response.String())
	if err != nil {
		return nil, err
	}

	logger.Info("Fetching clinical trials", zap.String("query", query.String()))
	found, err := r.provider.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetched clinical trials", zap.Int("count", len(found)))
	return found, nil
}

func queryAreas() []prompts.QueryArea {
	areas := make([]prompts.QueryArea, 0, len(trials.SearchAreas))
	for _, a := range trials.SearchAreas {
		areas = append(areas, prompts.QueryArea{Key: string(a), Description: a.Description()})
	}
	return areas
}

// parseStructuredQuery reads the first JSON object in the reply, tolerating
// code fences and surrounding prose. Non-scalar values are ignored.
func parseStructuredQuery(response string) (trials.Query, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end < start {
		return trials.Query{}, fmt.Errorf("%w: no JSON object in model reply %q", trials.ErrInvalidQuery, response)
	}

	raw := response[start : end+1]
	if !gjson.Valid(raw) {
		return trials.Query{}, fmt.Errorf("%w: invalid JSON in model reply %q", trials.ErrInvalidQuery, raw)
	}

	areas := map[string]string{}
	gjson.Parse(raw).ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String, gjson.Number:
			areas[key.String()] = value.String()
		}
		return true
	})

	return trials.StructuredQuery(areas), nil
}
