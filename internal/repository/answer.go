package repository

import (
	"context"
	"errors"

	"askboard/internal/cache"
	"askboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerRepository defines persistence operations for answers and their voter sets.
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error)
	Update(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, id uint) error
	Vote(ctx context.Context, answerID, userID uint) error
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository returns a new AnswerRepository implementation.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// withVoteCount selects answers together with their query-time vote count.
func (r *answerRepository) withVoteCount(db *gorm.DB) *gorm.DB {
	return db.Select(`answers.*,
		(SELECT COUNT(*) FROM answer_votes av WHERE av.answer_id = answers.id) AS vote_count`)
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		return models.NewInternalError(err)
	}
	// The parent question's cached detail now misses this answer.
	cache.InvalidateQuestion(ctx, answer.QuestionID)
	return nil
}

func (r *answerRepository) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	err := r.withVoteCount(r.db.WithContext(ctx)).
		Preload("Author").
		First(&answer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Answer", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &answer, nil
}

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	err := r.withVoteCount(r.db.WithContext(ctx)).
		Preload("Author").
		Where("question_id = ?", questionID).
		Order("answers.created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *models.Answer) error {
	if err := r.db.WithContext(ctx).Save(answer).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateQuestion(ctx, answer.QuestionID)
	return nil
}

// Delete removes the answer and its vote rows. An answer owns nothing else,
// so there is no further cascade.
func (r *answerRepository) Delete(ctx context.Context, id uint) error {
	var questionID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.First(&answer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Answer", id)
			}
			return models.NewInternalError(err)
		}
		questionID = answer.QuestionID

		if err := tx.Where("answer_id = ?", id).Delete(&models.AnswerVote{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Answer{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateQuestion(ctx, questionID)
	return nil
}

// Vote adds the user to the answer's voter set, idempotently.
func (r *answerRepository) Vote(ctx context.Context, answerID, userID uint) error {
	var answer models.Answer
	if err := r.db.WithContext(ctx).Select("id", "question_id").First(&answer, answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Answer", answerID)
		}
		return models.NewInternalError(err)
	}

	vote := models.AnswerVote{UserID: userID, AnswerID: answerID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&vote).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateQuestion(ctx, answer.QuestionID)
	return nil
}
