package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-essay-api/internal/dto"
	"github.com/noah-isme/gema-essay-api/internal/middleware"
	"github.com/noah-isme/gema-essay-api/internal/service"
	"github.com/noah-isme/gema-essay-api/internal/utils"
	"github.com/noah-isme/gema-essay-api/pkg/rubric"
)

// EssayHandler exposes essay grading endpoints.
type EssayHandler struct {
	service service.EssayService
	logger  zerolog.Logger
}

// NewEssayHandler builds an essay handler instance.
func NewEssayHandler(service service.EssayService, logger zerolog.Logger) *EssayHandler {
	return &EssayHandler{
		service: service,
		logger:  logger.With().Str("component", "essay_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. Extra handlers run
// ahead of the grading endpoints, e.g. a rate limiter.
func (h *EssayHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/grade-levels", h.gradeLevels)
	router.Post("/evaluate", chain(guards, h.evaluate)...)
	router.Post("/evaluate/upload", chain(guards, h.evaluateUpload)...)
	router.Post("/sample", h.sample)
}

func chain(guards []fiber.Handler, final fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	return append(handlers, final)
}

func (h *EssayHandler) evaluate(c *fiber.Ctx) error {
	var payload dto.EssayEvaluateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Evaluate(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "essay evaluated", response)
}

func (h *EssayHandler) evaluateUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	payload := dto.EssayEvaluateRequest{
		Prompt:     c.FormValue("prompt"),
		GradeLevel: c.FormValue("grade_level"),
	}

	response, err := h.service.EvaluateUpload(c.UserContext(), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "essay evaluated", response)
}

func (h *EssayHandler) sample(c *fiber.Ctx) error {
	var payload dto.EssaySampleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.GenerateSample(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "sample generated", response)
}

func (h *EssayHandler) gradeLevels(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "grade levels retrieved", h.service.GradeLevels())
}

func (h *EssayHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyAssignment), errors.Is(err, rubric.ErrEmptyAssignment):
		return utils.SendError(c, fiber.StatusBadRequest, service.ErrEmptyAssignment.Error())
	case errors.Is(err, rubric.ErrInvalidGradeLevel):
		return utils.SendError(c, fiber.StatusBadRequest, "grade_level must be one of 9, 10, 11, 12, college")
	case errors.Is(err, service.ErrUploadTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrUnsupportedFileType):
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	default:
		logger := middleware.RequestLogger(h.logger, c)
		logger.Error().Err(err).Str("path", c.Path()).Msg("essay request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
