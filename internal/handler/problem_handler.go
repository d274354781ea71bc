package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/service"
	"github.com/mihirnarula/consultigo-api/internal/utils"
)

// ProblemHandler manages the problem catalog endpoints.
type ProblemHandler struct {
	problems service.ProblemService
	grading  service.GradingService
	logger   zerolog.Logger
}

// NewProblemHandler builds a problem handler instance.
func NewProblemHandler(problems service.ProblemService, grading service.GradingService, logger zerolog.Logger) *ProblemHandler {
	return &ProblemHandler{
		problems: problems,
		grading:  grading,
		logger:   logger.With().Str("component", "problem_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. gradeLimiter
// guards only the grading route; catalog reads stay unthrottled.
func (h *ProblemHandler) Register(router fiber.Router, gradeLimiter fiber.Handler) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)

	router.Get("/:id/examples", h.listExamples)
	router.Post("/:id/examples", h.addExample)
	router.Get("/:id/frameworks", h.listFrameworks)
	router.Post("/:id/frameworks", h.addFramework)

	submit := router.Group("/:id/submit")
	if gradeLimiter != nil {
		submit.Use(gradeLimiter)
	}
	submit.Post("", h.submit)
}

func (h *ProblemHandler) list(c *fiber.Ctx) error {
	filter := dto.ProblemFilter{}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		filter.Difficulty = &difficulty
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	filter.Offset = offset
	filter.Limit = limit

	problems, err := h.problems.List(c.Context(), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "problems retrieved", problems)
}

func (h *ProblemHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	problem, err := h.problems.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "problem retrieved", problem)
}

func (h *ProblemHandler) create(c *fiber.Ctx) error {
	var payload dto.ProblemCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	problem, err := h.problems.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "problem created", problem)
}

func (h *ProblemHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ProblemUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	problem, err := h.problems.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "problem updated", problem)
}

func (h *ProblemHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.problems.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "problem deleted", nil)
}

func (h *ProblemHandler) listExamples(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	examples, err := h.problems.ListExamples(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "examples retrieved", examples)
}

func (h *ProblemHandler) addExample(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ExampleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	example, err := h.problems.AddExample(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "example created", example)
}

func (h *ProblemHandler) listFrameworks(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	frameworks, err := h.problems.ListFrameworks(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "frameworks retrieved", frameworks)
}

func (h *ProblemHandler) addFramework(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.FrameworkCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	framework, err := h.problems.AddFramework(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "framework created", framework)
}

func (h *ProblemHandler) submit(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmitAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.grading.Submit(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission graded", result)
}

func (h *ProblemHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrProblemNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "problem not found")
	case errors.Is(err, service.ErrFrameworkNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "framework not found")
	case errors.Is(err, service.ErrEmptySolution):
		return utils.SendError(c, fiber.StatusBadRequest, "answer text must not be empty")
	case errors.Is(err, service.ErrGradingNotConfigured):
		return utils.SendError(c, fiber.StatusInternalServerError, "grading backend is not configured")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
