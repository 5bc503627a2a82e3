package handler

import (
	"topic-quiz/internal/domain"
	"topic-quiz/internal/dto"
	"topic-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves the generated learning content endpoints.
type ContentHandler struct {
	content   service.ContentService
	resources service.ResourceService
}

func NewContentHandler(content service.ContentService, resources service.ResourceService) *ContentHandler {
	return &ContentHandler{content: content, resources: resources}
}

// Search godoc
// @Summary Topic overview
// @Description Returns the stored overview of a topic, generating and storing it on first request
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Search query"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "LLM unavailable"
// @Router /gemini-search/search [post]
func (h *ContentHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}
	resp, err := h.content.Search(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Serves stored questions or generates new ones for an existing topic
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Failure 503 {object} dto.ErrorResponse "LLM unavailable"
// @Router /gemini-search/generate-quiz [post]
func (h *ContentHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}
	resp, err := h.content.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateTopicVideos godoc
// @Summary Tutorial videos for a topic
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.TopicResourceRequest true "Topic and optional subtopic"
// @Success 200 {object} dto.VideosResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Video search failed"
// @Router /gemini-search/generate-topic-videos [post]
func (h *ContentHandler) GenerateTopicVideos(c *fiber.Ctx) error {
	req, err := parseTopicResource(c)
	if err != nil {
		return err
	}
	resp, err := h.resources.Videos(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateTopicArticles godoc
// @Summary Articles for a topic
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.TopicResourceRequest true "Topic and optional subtopic"
// @Success 200 {object} dto.ArticlesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "LLM unavailable"
// @Router /gemini-search/generate-topic-articles [post]
func (h *ContentHandler) GenerateTopicArticles(c *fiber.Ctx) error {
	req, err := parseTopicResource(c)
	if err != nil {
		return err
	}
	resp, err := h.resources.Articles(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateTopicDocumentation godoc
// @Summary Documentation links for a topic
// @Tags content
// @Accept json
// @Produce json
// @Param request body dto.TopicResourceRequest true "Topic and optional subtopic"
// @Success 200 {object} dto.DocumentationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "LLM unavailable"
// @Router /gemini-search/generate-topic-documentation [post]
func (h *ContentHandler) GenerateTopicDocumentation(c *fiber.Ctx) error {
	req, err := parseTopicResource(c)
	if err != nil {
		return err
	}
	resp, err := h.resources.Documentation(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func parseTopicResource(c *fiber.Ctx) (*dto.TopicResourceRequest, error) {
	var req dto.TopicResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.NewError(domain.ErrValidation, "Invalid request body", err)
	}
	return &req, nil
}
