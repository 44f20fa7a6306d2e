package repository

import (
	"testing"
	"time"

	"askboard/internal/database"
	"askboard/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestQuestion(t *testing.T, db *gorm.DB, authorID uint, subject, content string, createdAt time.Time) *models.Question {
	t.Helper()
	question := &models.Question{
		Subject:   subject,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question %q: %v", subject, err)
	}
	return question
}

func createTestAnswer(t *testing.T, db *gorm.DB, questionID, authorID uint, content string) *models.Answer {
	t.Helper()
	answer := &models.Answer{
		Content:    content,
		QuestionID: questionID,
		AuthorID:   authorID,
	}
	if err := db.Create(answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return answer
}
