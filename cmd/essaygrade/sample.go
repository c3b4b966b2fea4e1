package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noah-isme/gema-essay-api/internal/dto"
	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

type sampleOptions struct {
	prompt     string
	promptFile string
	grade      string
	output     string
}

func newSampleCommand(root *rootOptions) *cobra.Command {
	opts := &sampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a sample response outline for a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.prompt, "prompt", "p", "", "assignment prompt to outline")
	flags.StringVar(&opts.promptFile, "prompt-file", "", "read the prompt from a file")
	flags.StringVarP(&opts.grade, "grade", "g", defaultGradeLevel, "grade level: 9, 10, 11, 12 or college")
	flags.StringVarP(&opts.output, "output", "o", outputText, "output format: text, json or yaml")

	return cmd
}

func runSample(cmd *cobra.Command, root *rootOptions, opts *sampleOptions) error {
	logger := root.logger(cmd)

	if err := validateOutput(opts.output); err != nil {
		return err
	}
	level, err := parseLevel(opts.grade)
	if err != nil {
		return err
	}
	prompt, err := resolvePrompt(opts.prompt, opts.promptFile)
	if err != nil {
		return err
	}

	sample, err := rubric.GenerateSample(prompt, level)
	if err != nil {
		return fmt.Errorf("generate sample: %w", err)
	}
	logger.Debug().Str("grade_level", level.String()).Bool("guidance", sample.Guidance).Msg("sample generated")

	return writeOutput(cmd.OutOrStdout(), opts.output, dto.NewEssaySampleResponse(sample), func(w io.Writer) error {
		_, err := io.WriteString(w, sample.Text())
		if err == nil && sample.Guidance {
			_, err = io.WriteString(w, "\n")
		}
		return err
	})
}
