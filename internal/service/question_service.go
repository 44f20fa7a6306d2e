// Package service implements the application's business operations on top of
// the repository layer.
package service

import (
	"context"
	"time"

	"askboard/internal/models"
	"askboard/internal/repository"
	"askboard/internal/validation"
)

// QuestionService coordinates question lifecycle operations and enforces the
// ownership guard.
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

type CreateQuestionInput struct {
	AuthorID uint
	Subject  string
	Content  string
}

type UpdateQuestionInput struct {
	CallerID   uint
	QuestionID uint
	Subject    string
	Content    string
}

type DeleteQuestionInput struct {
	CallerID   uint
	QuestionID uint
}

// NewQuestionService returns a new QuestionService.
func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	if err := validation.ValidateSubject(in.Subject); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	question := &models.Question{
		Subject:  in.Subject,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}

	return s.questionRepo.GetByID(ctx, question.ID)
}

// GetQuestion returns the question with its author and answers.
func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// ListQuestions returns a zero-indexed page of 10 questions, newest first,
// optionally filtered by keyword.
func (s *QuestionService) ListQuestions(ctx context.Context, page int, keyword string) (*models.QuestionPage, error) {
	return s.questionRepo.ListPage(ctx, page, keyword)
}

// ListAllQuestions returns every question, newest first.
func (s *QuestionService) ListAllQuestions(ctx context.Context) ([]*models.Question, error) {
	return s.questionRepo.List(ctx)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, in UpdateQuestionInput) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	if question.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError("You can only modify your own questions")
	}
	if err := validation.ValidateSubject(in.Subject); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	now := time.Now()
	question.Subject = in.Subject
	question.Content = in.Content
	question.ModifiedAt = &now
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	return s.questionRepo.GetByID(ctx, in.QuestionID)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, in DeleteQuestionInput) error {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return err
	}

	if question.AuthorID != in.CallerID {
		return models.NewForbiddenError("You can only delete your own questions")
	}

	return s.questionRepo.Delete(ctx, in.QuestionID)
}

// VoteQuestion adds the caller to the question's voter set. Voting twice is a
// no-op.
func (s *QuestionService) VoteQuestion(ctx context.Context, questionID, callerID uint) error {
	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		return err
	}
	return s.questionRepo.Vote(ctx, questionID, callerID)
}
