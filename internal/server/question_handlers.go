package server

import (
	"askboard/internal/models"
	"askboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListQuestions handles GET /api/questions?page=&kw=
// The page index is zero-based; a page past the end returns an empty item list.
func (s *Server) ListQuestions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	if page < 0 {
		page = 0
	}
	keyword := c.Query("kw")

	result, err := s.questionService.ListQuestions(c.Context(), page, keyword)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(result)
}

// GetQuestion handles GET /api/questions/:id
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	question, err := s.questionService.GetQuestion(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(question)
}

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.CreateQuestion(c.Context(), service.CreateQuestionInput{
		AuthorID: userID,
		Subject:  req.Subject,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

// UpdateQuestion handles PUT /api/questions/:id
func (s *Server) UpdateQuestion(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.UpdateQuestion(c.Context(), service.UpdateQuestionInput{
		CallerID:   userID,
		QuestionID: id,
		Subject:    req.Subject,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(question)
}

// DeleteQuestion handles DELETE /api/questions/:id
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.questionService.DeleteQuestion(c.Context(), service.DeleteQuestionInput{
		CallerID:   userID,
		QuestionID: id,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Question deleted"})
}

// VoteQuestion handles POST /api/questions/:id/vote
func (s *Server) VoteQuestion(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.questionService.VoteQuestion(c.Context(), id, userID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vote recorded"})
}
