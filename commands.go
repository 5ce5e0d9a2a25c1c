package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/SaiNageswarS/trials-agent/agent"
	"github.com/SaiNageswarS/trials-agent/appconfig"
	"github.com/SaiNageswarS/trials-agent/handlers"
	"github.com/SaiNageswarS/trials-agent/schema"
	"github.com/SaiNageswarS/trials-agent/session"
	"github.com/mark3labs/mcp-go/server"
)

type starter struct {
	Label    string
	Question string
}

var starters = []starter{
	{
		Label:    "ibuprofen ± caffeine for back pain treatment",
		Question: "What is the effect of ibuprofen ± caffeine for back pain treatment?",
	},
	{
		Label:    "adverse effects of pseudoephedrine for nasal congestion",
		Question: "What are the adverse effects of pseudoephedrine for nasal congestion?",
	},
}

func printStarters(w io.Writer) {
	fmt.Fprintln(w, "Try one of these, or type your own question:")
	for i, s := range starters {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s.Label)
	}
}

// resolveQuestion expands a starter number into its question.
func resolveQuestion(input string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(starters) {
		return starters[n-1].Question
	}
	return input
}

type ChatCmd struct {
	Session string `short:"s" long:"session" description:"session id to continue"`
}

func (c *ChatCmd) Execute(_ []string) error {
	cfg, err := appconfig.Load(opts.Config)
	if err != nil {
		return err
	}

	ctx := getCancellableContext()
	a, closeStore, err := buildAgent(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sessionID := c.Session
	if sessionID == "" {
		sessionID = session.NewSessionID()
		printStarters(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "session %s\n", sessionID)

	reporter := agent.FuncProgressReporter(func(event *schema.AgentStreamChunk) error {
		return printChunk(os.Stdout, os.Stderr, event)
	})

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := resolveQuestion(scanner.Text())
		if question == "" {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// failures are already reported through the error chunk
		_, _ = a.Execute(ctx, reporter, &schema.GenerateAnswerRequest{
			SessionID: sessionID,
			Question:  question,
		})
	}
}

// printChunk writes answer text to out and progress, trial cards and errors to status.
func printChunk(out, status io.Writer, event *schema.AgentStreamChunk) error {
	switch {
	case event.GetAnswer() != nil:
		_, err := fmt.Fprint(out, event.GetAnswer().Content)
		return err
	case event.GetProgressUpdate() != nil:
		_, err := fmt.Fprintf(status, "[%s] %s\n", event.GetProgressUpdate().Step, event.GetProgressUpdate().Message)
		return err
	case event.GetTrials() != nil:
		for _, card := range event.GetTrials().Trials {
			if _, err := fmt.Fprintf(status, "  %s  %s\n    %s\n", card.ID, card.Title, card.URL); err != nil {
				return err
			}
		}
	case event.GetComplete() != nil:
		_, err := fmt.Fprintln(out)
		return err
	case event.GetError() != nil:
		_, err := fmt.Fprintf(status, "error (%s): %s\n", event.GetError().ErrorCode, event.GetError().ErrorMessage)
		return err
	}
	return nil
}

type MCPCmd struct{}

func (c *MCPCmd) Execute(_ []string) error {
	cfg, err := appconfig.Load(opts.Config)
	if err != nil {
		return err
	}

	a, closeStore, err := buildAgent(getCancellableContext(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	s := server.NewMCPServer(
		"Clinical Trials Agent",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	askHandler := handlers.ProvideAskHandler(a)
	s.AddTool(askHandler.Tool(), askHandler.Handle)

	return server.ServeStdio(s)
}
