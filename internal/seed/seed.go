// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"askboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every generated account gets.
const DefaultPassword = "password123"

// AdminUsername is the reserved account created by EnsureAdmin.
const AdminUsername = "admin"

// Seeder populates the board with generated users, questions, answers, and votes.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// ClearAll removes all board data. Votes go first so foreign keys never trip.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"answer_votes", "question_votes", "answers", "questions", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// EnsureAdmin creates the admin account if it does not already exist.
// The admin role is only ever granted here, never through signup.
func (s *Seeder) EnsureAdmin(password string) (*models.User, error) {
	var existing models.User
	err := s.db.Where("username = ?", AdminUsername).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Username: AdminUsername,
		Email:    "admin@askboard.local",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	log.Println("Admin account created")
	return admin, nil
}

// SeedUsers creates n generated accounts with the default password.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := s.db.Create(user).Error; err != nil {
			// Generated usernames can collide; skip and keep going.
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("failed to create any users")
	}
	return users, nil
}

// SeedQuestions creates n questions authored by random users, each with a
// handful of answers and votes.
func (s *Seeder) SeedQuestions(users []*models.User, n int) ([]*models.Question, error) {
	questions := make([]*models.Question, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		question := &models.Question{
			Subject:  gofakeit.Question(),
			Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID: author.ID,
		}
		if err := s.db.Create(question).Error; err != nil {
			return nil, fmt.Errorf("failed to create question: %w", err)
		}
		questions = append(questions, question)

		for j := 0; j < rand.Intn(4); j++ {
			answer := &models.Answer{
				Content:    gofakeit.Paragraph(1, 2, 8, "\n"),
				QuestionID: question.ID,
				AuthorID:   users[rand.Intn(len(users))].ID,
			}
			if err := s.db.Create(answer).Error; err != nil {
				return nil, fmt.Errorf("failed to create answer: %w", err)
			}

			for k := 0; k < rand.Intn(3); k++ {
				vote := &models.AnswerVote{
					AnswerID: answer.ID,
					UserID:   users[rand.Intn(len(users))].ID,
				}
				// Duplicate voter picks hit the unique index; ignore them.
				_ = s.db.Create(vote).Error
			}
		}

		for k := 0; k < rand.Intn(5); k++ {
			vote := &models.QuestionVote{
				QuestionID: question.ID,
				UserID:     users[rand.Intn(len(users))].ID,
			}
			_ = s.db.Create(vote).Error
		}
	}
	return questions, nil
}

// Run performs a full seeding pass: admin account, generated users, and a
// populated board.
func (s *Seeder) Run(numUsers, numQuestions int, clean bool) error {
	if clean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	if _, err := s.EnsureAdmin(DefaultPassword); err != nil {
		return err
	}

	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return err
	}
	log.Printf("Created %d users", len(users))

	questions, err := s.SeedQuestions(users, numQuestions)
	if err != nil {
		return err
	}
	log.Printf("Created %d questions", len(questions))

	return nil
}
