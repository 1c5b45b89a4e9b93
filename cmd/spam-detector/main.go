package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/di"
	"github.com/mikey/spamshield/internal/form"
	"github.com/mikey/spamshield/internal/ports"
	"go.uber.org/zap"
)

const (
	exitLegitimate = 0
	exitError      = 1
	exitSpam       = 2
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(exitError)
	}

	code := exitError
	if err := container.Invoke(func(logger *zap.Logger, emailFilter ports.EmailFilter) {
		code = run(flags, logger, emailFilter)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
	}
	os.Exit(code)
}

func run(flags *di.CLIFlags, logger *zap.Logger, emailFilter ports.EmailFilter) int {
	defer logger.Sync()

	body, err := readBody(flags, logger)
	if err != nil {
		logger.Error("Failed to read email content", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	result, err := emailFilter.ProcessEmail(context.Background(), &core.Email{
		From:    flags.From,
		Subject: flags.Subject,
		Body:    body,
	})
	if errors.Is(err, form.ErrEmptyBody) {
		fmt.Fprintln(os.Stderr, "Error: please provide the email content to analyze")
		return exitError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}

	if result.IsSpam {
		return exitSpam
	}
	return exitLegitimate
}

// readBody takes the body from -body, then -file, then stdin
func readBody(flags *di.CLIFlags, logger *zap.Logger) (string, error) {
	if flags.Body != "" {
		return flags.Body, nil
	}

	var r io.Reader = os.Stdin
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return "", fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		r = file
		logger.Info("Reading email content from file", zap.String("file", flags.InputFile))
	} else {
		logger.Info("Reading email content from stdin")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read email content: %w", err)
	}
	return string(data), nil
}
