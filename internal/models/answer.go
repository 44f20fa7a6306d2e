package models

import (
	"time"

	"gorm.io/gorm"
)

// Answer represents a reply to a question, owned by its author.
// An answer belongs to exactly one question for its lifetime.
type Answer struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Content    string   `gorm:"type:text;not null" json:"content"`
	QuestionID uint     `gorm:"not null;index" json:"question_id"`
	Question   Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	AuthorID   uint     `gorm:"not null;index" json:"author_id"`
	Author     User     `gorm:"foreignKey:AuthorID" json:"author"`
	// ModifiedAt is nil until the answer is modified for the first time.
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	// VoteCount is not persisted; computed at query time
	VoteCount int            `gorm:"->" json:"vote_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnswerVote records one user's endorsement of an answer.
// The combination of UserID and AnswerID must be unique.
type AnswerVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_answer" json:"user_id"`
	AnswerID  uint      `gorm:"not null;uniqueIndex:idx_user_answer" json:"answer_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Answer Answer `gorm:"foreignKey:AnswerID" json:"answer"`
}
