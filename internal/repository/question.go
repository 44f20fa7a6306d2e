package repository

import (
	"context"
	"errors"
	"strings"

	"askboard/internal/cache"
	"askboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository defines persistence operations for questions and their voter sets.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	List(ctx context.Context) ([]*models.Question, error)
	ListPage(ctx context.Context, page int, keyword string) (*models.QuestionPage, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	Vote(ctx context.Context, questionID, userID uint) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository returns a new QuestionRepository implementation.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// questionKeywordFilter matches a question when the keyword appears as a
// substring in its subject, content, author username, any answer's content, or
// that answer's author username. The subquery keeps each question at most once
// even when several answers match.
const questionKeywordFilter = `questions.id IN (
	SELECT q.id FROM questions q
	LEFT JOIN users qu ON qu.id = q.author_id AND qu.deleted_at IS NULL
	LEFT JOIN answers a ON a.question_id = q.id AND a.deleted_at IS NULL
	LEFT JOIN users au ON au.id = a.author_id AND au.deleted_at IS NULL
	WHERE q.subject LIKE ? ESCAPE '\'
	   OR q.content LIKE ? ESCAPE '\'
	   OR qu.username LIKE ? ESCAPE '\'
	   OR a.content LIKE ? ESCAPE '\'
	   OR au.username LIKE ? ESCAPE '\')`

// withCounts selects questions together with their query-time vote and answer counts.
func (r *questionRepository) withCounts(db *gorm.DB) *gorm.DB {
	return db.Select(`questions.*,
		(SELECT COUNT(*) FROM question_votes qv WHERE qv.question_id = questions.id) AS vote_count,
		(SELECT COUNT(*) FROM answers a WHERE a.question_id = questions.id AND a.deleted_at IS NULL) AS answer_count`)
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID loads the question together with its author and all of its answers
// (each with author and vote count) in a single repository call, so callers
// never navigate lazily across an already-closed unit of work.
func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	key := cache.QuestionKey(id)

	err := cache.Aside(ctx, key, &question, cache.QuestionTTL, func() error {
		err := r.withCounts(r.db.WithContext(ctx)).
			Preload("Author").
			Preload("Answers", func(db *gorm.DB) *gorm.DB {
				return db.Select(`answers.*,
					(SELECT COUNT(*) FROM answer_votes av WHERE av.answer_id = answers.id) AS vote_count`).
					Order("answers.created_at ASC")
			}).
			Preload("Answers.Author").
			First(&question, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Question", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) List(ctx context.Context) ([]*models.Question, error) {
	var questions []*models.Question
	err := r.withCounts(r.db.WithContext(ctx)).
		Preload("Author").
		Order("questions.created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

// ListPage returns the zero-indexed page of 10 questions ordered by creation
// time descending, optionally filtered by keyword. Pages past the end come
// back with an empty item list.
func (r *questionRepository) ListPage(ctx context.Context, page int, keyword string) (*models.QuestionPage, error) {
	if page < 0 {
		page = 0
	}
	size := models.DefaultPageSize

	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Question{})
		if keyword != "" {
			pattern := "%" + escapeLike(keyword) + "%"
			q = q.Where(questionKeywordFilter, pattern, pattern, pattern, pattern, pattern)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	items := []*models.Question{}
	err := r.withCounts(filtered()).
		Preload("Author").
		Order("questions.created_at DESC").
		Limit(size).
		Offset(page * size).
		Find(&items).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.QuestionPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateQuestion(ctx, question.ID)
	return nil
}

// Delete removes the question, its answers, and all related vote rows in one
// transaction. A question owns its answers, so they never outlive it.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Question", id)
			}
			return models.NewInternalError(err)
		}

		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", id)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.AnswerVote{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.QuestionVote{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Question{}, id).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateQuestion(ctx, id)
	return nil
}

// Vote adds the user to the question's voter set. Inserting with ON CONFLICT
// DO NOTHING over the (user_id, question_id) unique index makes the operation
// idempotent.
func (r *questionRepository) Vote(ctx context.Context, questionID, userID uint) error {
	vote := models.QuestionVote{UserID: userID, QuestionID: questionID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&vote).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateQuestion(ctx, questionID)
	return nil
}

// escapeLike escapes LIKE wildcards so keywords are matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
