package dto

import (
	"fmt"
	"math"
	"time"

	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

// MaxAssignmentLength bounds the assignment text accepted over the API.
const MaxAssignmentLength = 100000

// EssayEvaluateRequest is the payload for grading an assignment.
type EssayEvaluateRequest struct {
	Assignment string `json:"assignment" form:"assignment" validate:"required,max=100000"`
	Prompt     string `json:"prompt" form:"prompt" validate:"max=5000"`
	GradeLevel string `json:"grade_level" form:"grade_level" validate:"required,oneof=9 10 11 12 college"`
}

// EssaySampleRequest is the payload for generating a sample response outline.
type EssaySampleRequest struct {
	Prompt     string `json:"prompt" validate:"max=5000"`
	GradeLevel string `json:"grade_level" validate:"omitempty,oneof=9 10 11 12 college"`
	Format     string `json:"format" validate:"omitempty,oneof=text html"`
}

// EssayBreakdown presents features the way students see them.
type EssayBreakdown struct {
	Words                 int    `json:"words" yaml:"words"`
	Sentences             int    `json:"sentences" yaml:"sentences"`
	AverageSentenceLength string `json:"average_sentence_length" yaml:"average_sentence_length"`
	PromptRelevance       string `json:"prompt_relevance" yaml:"prompt_relevance"`
	TransitionsUsed       int    `json:"transitions_used" yaml:"transitions_used"`
}

// EssayEvaluationResponse is returned after grading an assignment.
type EssayEvaluationResponse struct {
	ID          string          `json:"id"`
	GradeLevel  string          `json:"grade_level"`
	Score       rubric.Score    `json:"score"`
	Features    rubric.Features `json:"features"`
	Breakdown   EssayBreakdown  `json:"breakdown"`
	Feedback    []rubric.Tip    `json:"feedback"`
	Disclaimer  string          `json:"disclaimer"`
	Cached      bool            `json:"cached"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
}

// EssaySampleResponse is returned by the sample generator.
type EssaySampleResponse struct {
	GradeLevel string                 `json:"grade_level,omitempty" yaml:"grade_level,omitempty"`
	Guidance   bool                   `json:"guidance" yaml:"guidance"`
	Title      string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Excerpt    string                 `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Tone       string                 `json:"tone,omitempty" yaml:"tone,omitempty"`
	Sections   []rubric.SampleSection `json:"sections,omitempty" yaml:"sections,omitempty"`
	Text       string                 `json:"text" yaml:"text"`
	HTML       string                 `json:"html,omitempty" yaml:"html,omitempty"`
}

// GradeLevelResponse describes a supported grade level.
type GradeLevelResponse struct {
	Key            string `json:"key"`
	ExpectedLength int    `json:"expected_length"`
	Tone           string `json:"tone"`
}

// NewEssayBreakdown formats features to one decimal and a whole percentage.
func NewEssayBreakdown(features rubric.Features) EssayBreakdown {
	return EssayBreakdown{
		Words:                 features.WordCount,
		Sentences:             features.SentenceCount,
		AverageSentenceLength: fmt.Sprintf("%.1f", features.AverageSentenceLength),
		PromptRelevance:       fmt.Sprintf("%.0f%%", math.Round(features.Relevance*100)),
		TransitionsUsed:       features.TransitionsUsed,
	}
}

// NewEssayEvaluationResponse converts a rubric result into a DTO.
func NewEssayEvaluationResponse(id string, level rubric.GradeLevel, result rubric.Result, evaluatedAt time.Time) EssayEvaluationResponse {
	feedback := result.Feedback
	if feedback == nil {
		feedback = []rubric.Tip{}
	}

	return EssayEvaluationResponse{
		ID:          id,
		GradeLevel:  level.String(),
		Score:       result.Score,
		Features:    result.Features,
		Breakdown:   NewEssayBreakdown(result.Features),
		Feedback:    feedback,
		Disclaimer:  rubric.Disclaimer,
		EvaluatedAt: evaluatedAt,
	}
}

// NewEssaySampleResponse converts a rubric sample into a DTO.
func NewEssaySampleResponse(sample rubric.Sample) EssaySampleResponse {
	return EssaySampleResponse{
		GradeLevel: sample.GradeLevel.String(),
		Guidance:   sample.Guidance,
		Title:      sample.Title(),
		Excerpt:    sample.Excerpt,
		Tone:       sample.Tone,
		Sections:   sample.Sections,
		Text:       sample.Text(),
	}
}
