package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

const defaultGradeLevel = string(rubric.Grade9)

var errPromptConflict = errors.New("use either --prompt or --prompt-file, not both")

type rootOptions struct {
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "essaygrade",
		Short:         "Estimate rubric scores for student essays",
		Long:          "essaygrade estimates a rubric score for an essay and suggests improvements. " + rubric.Disclaimer,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(newEvaluateCommand(opts), newSampleCommand(opts))
	return root
}

func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.WarnLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}
	return zerolog.New(writer).Level(level).With().Timestamp().Str("component", "essaygrade").Logger()
}

// resolvePrompt returns the trimmed inline prompt or the contents of promptFile.
func resolvePrompt(prompt, promptFile string) (string, error) {
	if promptFile == "" {
		return strings.TrimSpace(prompt), nil
	}
	if prompt != "" {
		return "", errPromptConflict
	}

	raw, err := os.ReadFile(promptFile)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// readAssignment reads the trimmed essay from path, or from in when path is empty or "-".
func readAssignment(in io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read essay from stdin: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read essay: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func parseLevel(value string) (rubric.GradeLevel, error) {
	level, err := rubric.ParseGradeLevel(value)
	if err != nil {
		keys := make([]string, 0, len(rubric.GradeLevels()))
		for _, l := range rubric.GradeLevels() {
			keys = append(keys, l.String())
		}
		return "", fmt.Errorf("%w (choose one of %s)", err, strings.Join(keys, ", "))
	}
	return level, nil
}
