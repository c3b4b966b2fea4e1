package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/gema-essay-api/internal/dto"
	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

const strongSentence = "Climate change matters because rising seas threaten coastal towns however communities can adapt and therefore prepare for storms."

func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEvaluateReadsStdinAsJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, strings.Repeat("word ", 150), "evaluate", "--grade", "9", "--output", "json")
	require.NoError(t, err)

	var report evaluationReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Equal(t, rubric.Grade9, report.GradeLevel)
	require.Equal(t, 30.0, report.Score.Numeric)
	require.Equal(t, rubric.LetterF, report.Score.Letter)
	require.Len(t, report.Feedback, 5)
	require.Equal(t, "150.0", report.Breakdown.AverageSentenceLength)
	require.Equal(t, "0%", report.Breakdown.PromptRelevance)
	require.Equal(t, rubric.Disclaimer, report.Disclaimer)
}

func TestEvaluateFileWithPromptFileAsText(t *testing.T) {
	dir := t.TempDir()
	essay := writeFile(t, dir, "essay.txt", strings.Repeat(strongSentence+" ", 17))
	prompt := writeFile(t, dir, "prompt.txt", "Climate change")

	stdout, _, err := executeCommand(t, "", "evaluate", essay, "--prompt-file", prompt, "-g", "12")
	require.NoError(t, err)

	require.Contains(t, stdout, "Estimated Grade: A (100.0/100)")
	require.Contains(t, stdout, "• Words: 306")
	require.Contains(t, stdout, "• Avg sentence length: 18.0 words")
	require.Contains(t, stdout, "• Prompt relevance: 100%")
	require.Contains(t, stdout, "  - "+rubric.TipMessage(rubric.TipStrongWriting))
	require.True(t, strings.HasSuffix(stdout, rubric.Disclaimer+"\n"))
}

func TestEvaluateYAMLOutput(t *testing.T) {
	stdout, _, err := executeCommand(t, strings.Repeat("word ", 150), "evaluate", "-o", "yaml")
	require.NoError(t, err)

	var decoded struct {
		GradeLevel string `yaml:"grade_level"`
		Score      struct {
			Letter    string `yaml:"letter"`
			SubScores struct {
				Structure float64 `yaml:"structure"`
			} `yaml:"sub_scores"`
		} `yaml:"score"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	require.Equal(t, defaultGradeLevel, decoded.GradeLevel)
	require.Equal(t, "F", decoded.Score.Letter)
	require.Equal(t, 10.0, decoded.Score.SubScores.Structure)
}

func TestEvaluateRejectsBlankAssignment(t *testing.T) {
	stdout, _, err := executeCommand(t, "  \n\t", "evaluate")
	require.EqualError(t, err, "please paste your assignment")
	require.Empty(t, stdout)
}

func TestEvaluateRejectsUnknownGrade(t *testing.T) {
	_, _, err := executeCommand(t, "Some text.", "evaluate", "--grade", "8")
	require.ErrorIs(t, err, rubric.ErrInvalidGradeLevel)
	require.Contains(t, err.Error(), "9, 10, 11, 12, college")
}

func TestEvaluateRejectsConflictingPromptFlags(t *testing.T) {
	prompt := writeFile(t, t.TempDir(), "prompt.txt", "Climate change")

	_, _, err := executeCommand(t, "Some text.", "evaluate", "--prompt", "inline", "--prompt-file", prompt)
	require.ErrorIs(t, err, errPromptConflict)
}

func TestEvaluateRejectsUnknownOutput(t *testing.T) {
	_, _, err := executeCommand(t, "Some text.", "evaluate", "--output", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestEvaluateVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "Short answer because reasons.", "evaluate", "-v", "-o", "json")
	require.NoError(t, err)
	require.NotContains(t, stdout, "essay evaluated")
	require.Contains(t, stderr, "essay evaluated")
}

func TestSampleText(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "sample", "--prompt", "Should schools require uniforms?", "--grade", "10")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(stdout, "Sample Response (10 level):\n"))
	require.Contains(t, stdout, "\nThesis: This response argues that Should schools require uniforms?...\n")
	require.Contains(t, stdout, "\nWriting tone: organized with basic evidence.\n")
}

func TestSampleGuidanceWithoutPrompt(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "sample", "--grade", "college")
	require.NoError(t, err)
	require.Equal(t, rubric.SampleGuidance+"\n", stdout)
}

func TestSampleJSON(t *testing.T) {
	prompt := strings.Repeat("a", 120)

	stdout, _, err := executeCommand(t, "", "sample", "-p", prompt, "-g", "college", "-o", "json")
	require.NoError(t, err)

	var response dto.EssaySampleResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	require.False(t, response.Guidance)
	require.Equal(t, "Sample Response (college level)", response.Title)
	require.Equal(t, strings.Repeat("a", rubric.SampleExcerptLength), response.Excerpt)
	require.Len(t, response.Sections, 5)
}

func TestSampleTrimsPrompt(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "sample", "-p", "   Is homework useful?  ", "-g", "10", "-o", "json")
	require.NoError(t, err)

	var response dto.EssaySampleResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	require.Equal(t, "Is homework useful?", response.Excerpt)
}

func TestEvaluateTrimsPromptFile(t *testing.T) {
	prompt := writeFile(t, t.TempDir(), "prompt.txt", "\n  Climate change\n\n")

	stdout, _, err := executeCommand(t, "\n\n"+strings.Repeat(strongSentence+" ", 17)+"\n", "evaluate", "--prompt-file", prompt, "-g", "12", "-o", "json")
	require.NoError(t, err)

	var report evaluationReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Equal(t, 1.0, report.Features.Relevance)
	require.Equal(t, 100.0, report.Score.Numeric)
}
