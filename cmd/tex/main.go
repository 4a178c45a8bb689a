package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/tex/pkg/operation"
	"github.com/walteh/tex/pkg/selector"
	"github.com/walteh/tex/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// Exit codes, part of the CLI contract.
const (
	exitOK             = 0
	exitInvalidPattern = 1 // either path regex failed to compile
	exitEmptySelection = 2 // either path regex matched no files
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	ctx := logger.WithContext(context.Background())

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		status.NewReporter(ctx, os.Stderr).Error(err)
		return exitCodeFor(err)
	}
	return exitOK
}

// exitCodeFor maps an error chain to the documented exit codes. Anything not
// covered by the selection contract (load failures, bad rule patterns, I/O)
// is a generic failure.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, selector.ErrInvalidPattern):
		return exitInvalidPattern
	case errors.Is(err, operation.ErrEmptySelection):
		return exitEmptySelection
	default:
		return 1
	}
}
