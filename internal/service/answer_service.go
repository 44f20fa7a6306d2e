package service

import (
	"context"
	"time"

	"askboard/internal/models"
	"askboard/internal/repository"
	"askboard/internal/validation"
)

// AnswerService coordinates answer lifecycle operations and enforces the
// ownership guard.
type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
}

type CreateAnswerInput struct {
	AuthorID   uint
	QuestionID uint
	Content    string
}

type UpdateAnswerInput struct {
	CallerID uint
	AnswerID uint
	Content  string
}

type DeleteAnswerInput struct {
	CallerID uint
	AnswerID uint
}

// NewAnswerService returns a new AnswerService.
func NewAnswerService(answerRepo repository.AnswerRepository, questionRepo repository.QuestionRepository) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
	}
}

// CreateAnswer persists a new answer under an existing question and returns
// it, so the caller can redirect to the parent question.
func (s *AnswerService) CreateAnswer(ctx context.Context, in CreateAnswerInput) (*models.Answer, error) {
	if _, err := s.questionRepo.GetByID(ctx, in.QuestionID); err != nil {
		return nil, err
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	answer := &models.Answer{
		Content:    in.Content,
		QuestionID: in.QuestionID,
		AuthorID:   in.AuthorID,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	return s.answerRepo.GetByID(ctx, answer.ID)
}

func (s *AnswerService) GetAnswer(ctx context.Context, id uint) (*models.Answer, error) {
	return s.answerRepo.GetByID(ctx, id)
}

func (s *AnswerService) UpdateAnswer(ctx context.Context, in UpdateAnswerInput) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, in.AnswerID)
	if err != nil {
		return nil, err
	}

	if answer.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError("You can only modify your own answers")
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	now := time.Now()
	answer.Content = in.Content
	answer.ModifiedAt = &now
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}

	return s.answerRepo.GetByID(ctx, in.AnswerID)
}

func (s *AnswerService) DeleteAnswer(ctx context.Context, in DeleteAnswerInput) error {
	answer, err := s.answerRepo.GetByID(ctx, in.AnswerID)
	if err != nil {
		return err
	}

	if answer.AuthorID != in.CallerID {
		return models.NewForbiddenError("You can only delete your own answers")
	}

	return s.answerRepo.Delete(ctx, in.AnswerID)
}

// VoteAnswer adds the caller to the answer's voter set. Voting twice is a
// no-op.
func (s *AnswerService) VoteAnswer(ctx context.Context, answerID, callerID uint) error {
	return s.answerRepo.Vote(ctx, answerID, callerID)
}
