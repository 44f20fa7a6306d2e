package server

import (
	"askboard/internal/models"
	"askboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAnswer handles POST /api/questions/:id/answers
func (s *Server) CreateAnswer(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	answer, err := s.answerService.CreateAnswer(c.Context(), service.CreateAnswerInput{
		AuthorID:   userID,
		QuestionID: questionID,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

// UpdateAnswer handles PUT /api/answers/:id
func (s *Server) UpdateAnswer(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	answer, err := s.answerService.UpdateAnswer(c.Context(), service.UpdateAnswerInput{
		CallerID: userID,
		AnswerID: id,
		Content:  req.Content,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(answer)
}

// DeleteAnswer handles DELETE /api/answers/:id
func (s *Server) DeleteAnswer(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.answerService.DeleteAnswer(c.Context(), service.DeleteAnswerInput{
		CallerID: userID,
		AnswerID: id,
	}); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Answer deleted"})
}

// VoteAnswer handles POST /api/answers/:id/vote
func (s *Server) VoteAnswer(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.answerService.VoteAnswer(c.Context(), id, userID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vote recorded"})
}
