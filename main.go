package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

// Options is the root command; sub-commands are parsed by go-flags.
type Options struct {
	Config string  `short:"f" long:"config" description:"ini config path" default:"config.ini"`
	Chat   ChatCmd `command:"chat" description:"Ask clinical trial questions from the terminal"`
	MCP    MCPCmd  `command:"mcp" description:"Serve the ask_clinical_trials tool over MCP stdio"`
}

var opts Options

func main() {
	dotenv.LoadEnv()

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Stdout.WriteString(flagsErr.Message + "\n")
			return
		}
		logger.Fatal("Command failed", zap.Error(err))
	}
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
