package models

import (
	"time"

	"gorm.io/gorm"
)

// Question represents a top-level post on the board, owned by its author.
// Its answers are deleted together with the question.
type Question struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Subject  string `gorm:"size:200;not null" json:"subject"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	// ModifiedAt is nil until the question is modified for the first time.
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	Answers    []Answer   `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	// VoteCount is not persisted; computed at query time
	VoteCount int `gorm:"->" json:"vote_count"`
	// AnswerCount is not persisted; computed at query time
	AnswerCount int            `gorm:"->" json:"answer_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuestionVote records one user's endorsement of a question.
// The combination of UserID and QuestionID must be unique.
type QuestionVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_user_question" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`

	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Question Question `gorm:"foreignKey:QuestionID" json:"question"`
}
