package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noah-isme/gema-essay-api/internal/dto"
	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

type evaluateOptions struct {
	prompt     string
	promptFile string
	grade      string
	output     string
}

type evaluationReport struct {
	GradeLevel rubric.GradeLevel  `json:"grade_level" yaml:"grade_level"`
	Score      rubric.Score       `json:"score" yaml:"score"`
	Features   rubric.Features    `json:"features" yaml:"features"`
	Breakdown  dto.EssayBreakdown `json:"breakdown" yaml:"breakdown"`
	Feedback   []rubric.Tip       `json:"feedback" yaml:"feedback"`
	Disclaimer string             `json:"disclaimer" yaml:"disclaimer"`
}

func newEvaluateCommand(root *rootOptions) *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate [essay-file]",
		Short: "Score an essay read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, args, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.prompt, "prompt", "p", "", "assignment prompt the essay responds to")
	flags.StringVar(&opts.promptFile, "prompt-file", "", "read the prompt from a file")
	flags.StringVarP(&opts.grade, "grade", "g", defaultGradeLevel, "grade level: 9, 10, 11, 12 or college")
	flags.StringVarP(&opts.output, "output", "o", outputText, "output format: text, json or yaml")

	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string, root *rootOptions, opts *evaluateOptions) error {
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

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	assignment, err := readAssignment(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	result, err := rubric.Evaluate(assignment, prompt, level)
	if err != nil {
		if errors.Is(err, rubric.ErrEmptyAssignment) {
			return errors.New("please paste your assignment")
		}
		return fmt.Errorf("evaluate essay: %w", err)
	}

	logger.Debug().
		Str("grade_level", level.String()).
		Float64("score", result.Score.Numeric).
		Str("letter", string(result.Score.Letter)).
		Int("tips", len(result.Feedback)).
		Msg("essay evaluated")

	report := evaluationReport{
		GradeLevel: level,
		Score:      result.Score,
		Features:   result.Features,
		Breakdown:  dto.NewEssayBreakdown(result.Features),
		Feedback:   result.Feedback,
		Disclaimer: rubric.Disclaimer,
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, report, report.writeText)
}

func (r evaluationReport) writeText(w io.Writer) error {
	subs := r.Score.SubScores
	lines := []string{
		fmt.Sprintf("Estimated Grade: %s (%.1f/100)", r.Score.Letter, r.Score.Numeric),
		"",
		"Breakdown:",
		fmt.Sprintf("  • Words: %d", r.Breakdown.Words),
		fmt.Sprintf("  • Sentences: %d", r.Breakdown.Sentences),
		fmt.Sprintf("  • Avg sentence length: %s words", r.Breakdown.AverageSentenceLength),
		fmt.Sprintf("  • Prompt relevance: %s", r.Breakdown.PromptRelevance),
		fmt.Sprintf("  • Transitions used: %d", r.Breakdown.TransitionsUsed),
		"",
		"Sub-scores:",
		fmt.Sprintf("  length       %5.1f / %.0f", subs.Length, rubric.MaxLengthScore),
		fmt.Sprintf("  relevance    %5.1f / %.0f", subs.Relevance, rubric.MaxRelevanceScore),
		fmt.Sprintf("  structure    %5.1f / %.0f", subs.Structure, rubric.MaxStructureScore),
		fmt.Sprintf("  transitions  %5.1f / %.0f", subs.Transitions, rubric.MaxTransitionScore),
		fmt.Sprintf("  evidence     %5.1f / %.0f", subs.Evidence, rubric.MaxEvidenceScore),
		"",
		"Feedback:",
	}
	for _, tip := range r.Feedback {
		lines = append(lines, "  - "+tip.Message)
	}
	lines = append(lines, "", r.Disclaimer)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
