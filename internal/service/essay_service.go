package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/gema-essay-api/internal/dto"
	"github.com/noah-isme/gema-essay-api/internal/observability"
	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

// ErrEmptyAssignment indicates the submitted assignment has no text after trimming.
var ErrEmptyAssignment = errors.New("please paste your assignment")

// ErrUploadTooLarge indicates an uploaded essay file exceeds the configured size.
var ErrUploadTooLarge = errors.New("uploaded file is too large")

// ErrUnsupportedFileType indicates an uploaded essay is not plain UTF-8 text.
var ErrUnsupportedFileType = errors.New("only plain text files are supported")

const (
	sampleFormatText = "text"
	sampleFormatHTML = "html"
	cacheKeyPrefix   = "essay:evaluation:"
)

// EssayService grades assignments and produces sample response outlines.
type EssayService interface {
	Evaluate(ctx context.Context, payload dto.EssayEvaluateRequest) (dto.EssayEvaluationResponse, error)
	EvaluateUpload(ctx context.Context, payload dto.EssayEvaluateRequest, file *multipart.FileHeader) (dto.EssayEvaluationResponse, error)
	GenerateSample(ctx context.Context, payload dto.EssaySampleRequest) (dto.EssaySampleResponse, error)
	GradeLevels() []dto.GradeLevelResponse
}

// EssayServiceConfig describes the optional knobs of the essay service.
type EssayServiceConfig struct {
	CacheTTL       time.Duration
	UploadMaxBytes int64
}

type essayService struct {
	cache     *redis.Client
	cacheTTL  time.Duration
	events    EvaluationPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
	maxUpload int64
	now       func() time.Time
	newID     func() string
}

// NewEssayService constructs the essay service. The cache and publisher are optional.
func NewEssayService(cache *redis.Client, events EvaluationPublisher, validate *validator.Validate, logger zerolog.Logger, cfg EssayServiceConfig) EssayService {
	if cfg.UploadMaxBytes <= 0 {
		cfg.UploadMaxBytes = 256 * 1024
	}

	return &essayService{
		cache:     cache,
		cacheTTL:  cfg.CacheTTL,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "essay_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/gema-essay-api/internal/service/essay"),
		maxUpload: cfg.UploadMaxBytes,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *essayService) Evaluate(ctx context.Context, payload dto.EssayEvaluateRequest) (dto.EssayEvaluationResponse, error) {
	payload.Assignment = strings.TrimSpace(payload.Assignment)
	payload.Prompt = strings.TrimSpace(payload.Prompt)
	payload.GradeLevel = strings.ToLower(strings.TrimSpace(payload.GradeLevel))

	ctx, span := s.tracer.Start(ctx, "essay.evaluate", trace.WithAttributes(
		attribute.String("essay.grade_level", payload.GradeLevel),
		attribute.Int("essay.assignment_bytes", len(payload.Assignment)),
	))
	defer span.End()

	if payload.Assignment == "" {
		span.SetStatus(codes.Error, "empty_assignment")
		return dto.EssayEvaluationResponse{}, ErrEmptyAssignment
	}

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.EssayEvaluationResponse{}, err
	}

	level, err := rubric.ParseGradeLevel(payload.GradeLevel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_grade_level")
		return dto.EssayEvaluationResponse{}, err
	}

	cacheKey := evaluationCacheKey(level, payload.Prompt, payload.Assignment)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		span.SetAttributes(attribute.Bool("essay.cached", true))
		observability.EssayCacheHits().Inc()
		observability.EssayEvaluations().WithLabelValues(level.String(), string(cached.Score.Letter)).Inc()
		return cached, nil
	}

	result, err := rubric.Evaluate(payload.Assignment, payload.Prompt, level)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation_failed")
		return dto.EssayEvaluationResponse{}, err
	}

	response := dto.NewEssayEvaluationResponse(s.newID(), level, result, s.now().UTC())

	span.SetAttributes(
		attribute.Float64("essay.score", result.Score.Numeric),
		attribute.String("essay.letter", string(result.Score.Letter)),
		attribute.Int("essay.word_count", result.Features.WordCount),
		attribute.Int("essay.tips", len(result.Feedback)),
	)
	observability.EssayEvaluations().WithLabelValues(level.String(), string(result.Score.Letter)).Inc()
	observability.EssayScore().WithLabelValues(level.String()).Observe(result.Score.Numeric)

	s.writeCache(ctx, cacheKey, response)
	s.publish(ctx, response)

	s.logger.Debug().
		Str("evaluation_id", response.ID).
		Str("grade_level", response.GradeLevel).
		Float64("score", result.Score.Numeric).
		Str("letter", string(result.Score.Letter)).
		Msg("essay evaluated")

	return response, nil
}

func (s *essayService) EvaluateUpload(ctx context.Context, payload dto.EssayEvaluateRequest, file *multipart.FileHeader) (dto.EssayEvaluationResponse, error) {
	if file == nil {
		return dto.EssayEvaluationResponse{}, ErrEmptyAssignment
	}
	if file.Size > s.maxUpload {
		return dto.EssayEvaluationResponse{}, ErrUploadTooLarge
	}

	reader, err := file.Open()
	if err != nil {
		return dto.EssayEvaluationResponse{}, fmt.Errorf("open upload: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, s.maxUpload+1))
	if err != nil {
		return dto.EssayEvaluationResponse{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxUpload {
		return dto.EssayEvaluationResponse{}, ErrUploadTooLarge
	}
	if len(data) == 0 {
		return dto.EssayEvaluationResponse{}, ErrEmptyAssignment
	}

	detected := mimetype.Detect(data)
	if !isPlainText(detected) || !utf8.Valid(data) {
		s.logger.Warn().Str("mime", detected.String()).Str("filename", file.Filename).Msg("rejected essay upload")
		return dto.EssayEvaluationResponse{}, ErrUnsupportedFileType
	}

	payload.Assignment = string(data)
	return s.Evaluate(ctx, payload)
}

// isPlainText accepts text/plain and its descendants, e.g. text/csv for essays
// whose lines carry the same number of commas.
func isPlainText(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func (s *essayService) GenerateSample(ctx context.Context, payload dto.EssaySampleRequest) (dto.EssaySampleResponse, error) {
	payload.Prompt = strings.TrimSpace(payload.Prompt)
	payload.GradeLevel = strings.ToLower(strings.TrimSpace(payload.GradeLevel))
	payload.Format = strings.ToLower(strings.TrimSpace(payload.Format))
	if payload.Format == "" {
		payload.Format = sampleFormatText
	}
	if payload.Prompt == "" {
		// a blank prompt yields guidance whatever level was sent
		payload.GradeLevel = ""
	}

	_, span := s.tracer.Start(ctx, "essay.sample", trace.WithAttributes(
		attribute.String("essay.grade_level", payload.GradeLevel),
		attribute.String("essay.format", payload.Format),
	))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.EssaySampleResponse{}, err
	}

	sample, err := rubric.GenerateSample(payload.Prompt, rubric.GradeLevel(payload.GradeLevel))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid_grade_level")
		return dto.EssaySampleResponse{}, err
	}

	response := dto.NewEssaySampleResponse(sample)
	if payload.Format == sampleFormatHTML {
		response.HTML = s.renderSampleHTML(sample)
	}

	span.SetAttributes(attribute.Bool("essay.guidance", sample.Guidance))
	observability.EssaySamples().WithLabelValues(payload.GradeLevel, payload.Format).Inc()

	return response, nil
}

func (s *essayService) GradeLevels() []dto.GradeLevelResponse {
	levels := rubric.GradeLevels()
	response := make([]dto.GradeLevelResponse, 0, len(levels))
	for _, level := range levels {
		expected, _ := rubric.ExpectedLength(level)
		tone, _ := rubric.Tone(level)
		response = append(response, dto.GradeLevelResponse{
			Key:            level.String(),
			ExpectedLength: expected,
			Tone:           tone,
		})
	}
	return response
}

// renderSampleHTML mirrors the markup of the web client. Interpolated text is
// stripped of markup since the prompt is user supplied.
func (s *essayService) renderSampleHTML(sample rubric.Sample) string {
	if sample.Guidance {
		return html.EscapeString(rubric.SampleGuidance)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s:</b><br><br>\n", s.sanitizer.Sanitize(sample.Title()))
	last := len(sample.Sections) - 1
	for i, section := range sample.Sections {
		heading := s.sanitizer.Sanitize(section.Heading)
		body := s.sanitizer.Sanitize(section.Body)
		if i == last {
			fmt.Fprintf(&b, "<i>%s:</i> %s\n", heading, body)
			continue
		}
		fmt.Fprintf(&b, "%s: %s<br><br>\n", heading, body)
	}
	return b.String()
}

func (s *essayService) readCache(ctx context.Context, key string) (dto.EssayEvaluationResponse, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return dto.EssayEvaluationResponse{}, false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read evaluation cache")
		}
		return dto.EssayEvaluationResponse{}, false
	}

	var response dto.EssayEvaluationResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed evaluation cache entry")
		return dto.EssayEvaluationResponse{}, false
	}

	response.Cached = true
	return response, true
}

func (s *essayService) writeCache(ctx context.Context, key string, response dto.EssayEvaluationResponse) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode evaluation cache entry")
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store evaluation cache")
	}
}

func (s *essayService) publish(ctx context.Context, response dto.EssayEvaluationResponse) {
	if s.events == nil {
		return
	}

	event := EvaluationEvent{
		ID:          response.ID,
		GradeLevel:  response.GradeLevel,
		Letter:      string(response.Score.Letter),
		Score:       response.Score.Numeric,
		WordCount:   response.Features.WordCount,
		EvaluatedAt: response.EvaluatedAt,
	}

	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("evaluation_id", response.ID).Msg("failed to publish evaluation event")
	}
}

func evaluationCacheKey(level rubric.GradeLevel, prompt, assignment string) string {
	hash := sha256.New()
	hash.Write([]byte(level))
	hash.Write([]byte{0})
	hash.Write([]byte(prompt))
	hash.Write([]byte{0})
	hash.Write([]byte(assignment))
	return cacheKeyPrefix + hex.EncodeToString(hash.Sum(nil))
}
