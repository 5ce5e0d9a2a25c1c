package prompts

import (
	"strings"
	"testing"
)

func TestRenderValidationPrompt(t *testing.T) {
	prompt, err := RenderValidationPrompt("Is ibuprofen better with caffeine for back pain?")
	if err != nil {
		t.Fatalf("Failed to render validation prompt: %v", err)
	}

	expected := []string{
		"YES or NO",
		"clinical trials",
		"User message: Is ibuprofen better with caffeine for back pain?",
	}

	for _, e := range expected {
		if !strings.Contains(prompt, e) {
			t.Errorf("Validation prompt should contain '%s'", e)
		}
	}
}

func TestRenderQueryExtractionPrompt(t *testing.T) {
	areas := []QueryArea{
		{Key: "query.cond", Description: "Conditions or disease"},
		{Key: "query.intr", Description: "Intervention or treatment"},
	}

	prompt, err := RenderQueryExtractionPrompt("pseudoephedrine adverse effects", areas)
	if err != nil {
		t.Fatalf("Failed to render query extraction prompt: %v", err)
	}

	expected := []string{
		"  - query.cond → Conditions or disease",
		"  - query.intr → Intervention or treatment",
		"Essie",
		"AREA[LastUpdatePostDate]RANGE[2023-01-15,MAX]",
		"User message: pseudoephedrine adverse effects",
		"Return ONLY a JSON object",
	}

	for _, e := range expected {
		if !strings.Contains(prompt, e) {
			t.Errorf("Query extraction prompt should contain '%s'", e)
		}
	}
}

func TestRenderRerankPrompt(t *testing.T) {
	trials := "NCT00000001: Ibuprofen trial - Summary one\nNCT00000002: Caffeine trial - Summary two"

	prompt, err := RenderRerankPrompt("back pain", trials)
	if err != nil {
		t.Fatalf("Failed to render rerank prompt: %v", err)
	}

	if !strings.Contains(prompt, "comma-separated list") {
		t.Error("Rerank prompt should ask for a comma-separated list")
	}
	if !strings.Contains(prompt, "up to three") {
		t.Error("Rerank prompt should cap the list at three")
	}
	if !strings.HasSuffix(strings.TrimSpace(prompt), trials) {
		t.Error("Rerank prompt should end with the candidate trials")
	}
}

func TestRenderAnswerSystemPrompt(t *testing.T) {
	prompt, err := RenderAnswerSystemPrompt("NCT00000001: Title - Summary\n{\"outcomeMeasuresModule\":{}}")
	if err != nil {
		t.Fatalf("Failed to render answer prompt: %v", err)
	}

	want := "You are a helpful assistant, providing information about clinical trials. Your answers should be based only on following studies:\nNCT00000001: Title - Summary\n{\"outcomeMeasuresModule\":{}}\n"
	if prompt != want {
		t.Errorf("Unexpected answer system prompt:\n%q", prompt)
	}
}

func TestRenderPreservesSpecialCharacters(t *testing.T) {
	prompt, err := RenderValidationPrompt(`Does "aspirin" & <warfarin> interact?`)
	if err != nil {
		t.Fatalf("Failed to render prompt with special characters: %v", err)
	}

	if !strings.Contains(prompt, `Does "aspirin" & <warfarin> interact?`) {
		t.Error("Validation prompt should preserve special characters")
	}
}

func TestRenderConsistency(t *testing.T) {
	p1, err1 := RenderRerankPrompt("test", "NCT00000001: a - b")
	p2, err2 := RenderRerankPrompt("test", "NCT00000001: a - b")
	if err1 != nil || err2 != nil {
		t.Fatalf("Render failed: %v %v", err1, err2)
	}
	if p1 != p2 {
		t.Error("Prompts should be consistent between calls")
	}
}
