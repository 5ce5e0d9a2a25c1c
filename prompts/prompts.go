package prompts

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

// QueryArea documents one searchable area of the registry for the query extraction prompt.
type QueryArea struct {
	Key         string
	Description string
}

// RenderValidationPrompt asks the model whether a message can be answered from clinical trial data.
func RenderValidationPrompt(message string) (string, error) {
	return render("validate_request", struct{ Message string }{Message: message})
}

// RenderQueryExtractionPrompt asks the model for a JSON object mapping query areas to Essie expressions.
func RenderQueryExtractionPrompt(message string, areas []QueryArea) (string, error) {
	return render("extract_query", struct {
		Message string
		Areas   []QueryArea
	}{Message: message, Areas: areas})
}

// RenderRerankPrompt lists candidate trials, one per line, and asks for the most relevant IDs.
func RenderRerankPrompt(message, trials string) (string, error) {
	return render("rerank_trials", struct {
		Message string
		Trials  string
	}{Message: message, Trials: trials})
}

// RenderAnswerSystemPrompt restricts the answer to the given grounding studies.
func RenderAnswerSystemPrompt(trials string) (string, error) {
	return render("answer_system", struct{ Trials string }{Trials: trials})
}

func render(name string, data any) (string, error) {
	content, err := templatesFS.ReadFile("templates/" + name + ".md")
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
