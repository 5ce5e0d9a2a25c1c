package agent

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/trials-agent/llm"
	"github.com/SaiNageswarS/trials-agent/prompts"
	"go.uber.org/zap"
)

// Validator decides whether a message can be answered from clinical trial data.
type Validator struct {
	client llm.LLMClient
}

func NewValidator(client llm.LLMClient) *Validator {
	return &Validator{client: client}
}

func (v *Validator) Validate(ctx context.Context, message string) (bool, error) {
	prompt, err := prompts.RenderValidationPrompt(message)
	if err != nil {
		return false, fmt.Errorf("failed to render validation prompt: %w", err)
	}

	var response strings.Builder
	err = v.client.GenerateInference(ctx,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		func(chunk string) error {
			response.WriteString(chunk)
			return nil
		},
		llm.WithTemperature(0),
		llm.WithMaxTokens(10),
	)
	if err != nil {
		return false, fmt.Errorf("validation inference failed: %w", err)
	}

	valid, err := parseYesNo(response.String())
	if err != nil {
		return false, err
	}

	logger.Info("Validated request", zap.Bool("valid", valid))
	return valid, nil
}

// parseYesNo accepts exactly one of the words YES or NO, in any case.
func parseYesNo(response string) (bool, error) {
	words := strings.FieldsFunc(strings.ToUpper(response), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var yes, no bool
	for _, w := range words {
		switch w {
		case "YES":
			yes = true
		case "NO":
			no = true
		}
	}

	if yes == no {
		return false, fmt.Errorf("%w: expected YES or NO, got %q", ErrValidationFailure, response)
	}
	return yes, nil
}
