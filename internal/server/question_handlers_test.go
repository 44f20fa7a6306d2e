package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"askboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedQuestion(t *testing.T, db *gorm.DB, authorID uint, subject, content string) *models.Question {
	t.Helper()
	question := &models.Question{Subject: subject, Content: content, AuthorID: authorID}
	require.NoError(t, db.Create(question).Error)
	return question
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateQuestion(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")

	app := fiber.New()
	app.Post("/questions", asUser(alice.ID), s.CreateQuestion)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/questions", map[string]string{
		"subject": "sbb가 무엇인가요?",
		"content": "sbb에 대해서 알고 싶습니다.",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "sbb가 무엇인가요?", body["subject"])
	assert.NotZero(t, body["id"])
	assert.NotEmpty(t, body["created_at"])
	assert.Nil(t, body["modified_at"])
}

func TestCreateQuestion_EmptySubject(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")

	app := fiber.New()
	app.Post("/questions", asUser(alice.ID), s.CreateQuestion)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/questions", map[string]string{
		"subject": "",
		"content": "content",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing was stored.
	var count int64
	require.NoError(t, db.Model(&models.Question{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetQuestion(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	question := seedQuestion(t, db, alice.ID, "sbb가 무엇인가요?", "sbb에 대해서 알고 싶습니다.")
	require.NoError(t, db.Create(&models.Answer{
		Content: "네 자동으로 생성됩니다.", QuestionID: question.ID, AuthorID: bob.ID,
	}).Error)

	app := fiber.New()
	app.Get("/questions/:id", s.GetQuestion)

	req := httptest.NewRequest(http.MethodGet, "/questions/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "sbb가 무엇인가요?", body["subject"])

	author, ok := body["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", author["username"])

	answers, ok := body["answers"].([]any)
	require.True(t, ok)
	require.Len(t, answers, 1)
	answer := answers[0].(map[string]any)
	assert.Equal(t, "네 자동으로 생성됩니다.", answer["content"])
	answerAuthor := answer["author"].(map[string]any)
	assert.Equal(t, "bob", answerAuthor["username"])
}

func TestGetQuestion_NotFound(t *testing.T) {
	s, _ := setupTestServer(t)

	app := fiber.New()
	app.Get("/questions/:id", s.GetQuestion)

	req := httptest.NewRequest(http.MethodGet, "/questions/9999", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestUpdateQuestion_Anonymous(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	seedQuestion(t, db, alice.ID, "sbb가 무엇인가요?", "sbb에 대해서 알고 싶습니다.")

	// No identity middleware: the request reaches the handler unauthenticated.
	app := fiber.New()
	app.Put("/questions/:id", s.UpdateQuestion)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/questions/1", map[string]string{
		"subject": "수정된 제목",
		"content": "수정된 내용",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateQuestion_NonOwner(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	question := seedQuestion(t, db, alice.ID, "sbb가 무엇인가요?", "sbb에 대해서 알고 싶습니다.")

	app := fiber.New()
	app.Put("/questions/:id", asUser(bob.ID), s.UpdateQuestion)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/questions/1", map[string]string{
		"subject": "수정된 제목",
		"content": "수정된 내용",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])

	// The question is unchanged.
	var reloaded models.Question
	require.NoError(t, db.First(&reloaded, question.ID).Error)
	assert.Equal(t, "sbb가 무엇인가요?", reloaded.Subject)
	assert.Nil(t, reloaded.ModifiedAt)
}

func TestUpdateQuestion_Owner(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	seedQuestion(t, db, alice.ID, "sbb가 무엇인가요?", "sbb에 대해서 알고 싶습니다.")

	app := fiber.New()
	app.Put("/questions/:id", asUser(alice.ID), s.UpdateQuestion)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/questions/1", map[string]string{
		"subject": "수정된 제목",
		"content": "수정된 내용",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "수정된 제목", body["subject"])
	assert.NotNil(t, body["modified_at"])
}

func TestDeleteQuestion(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedQuestion(t, db, alice.ID, "Subject", "Content")

	app := fiber.New()
	app.Delete("/questions/bob/:id", asUser(bob.ID), s.DeleteQuestion)
	app.Delete("/questions/alice/:id", asUser(alice.ID), s.DeleteQuestion)
	app.Get("/questions/:id", s.GetQuestion)

	req := httptest.NewRequest(http.MethodDelete, "/questions/bob/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/questions/alice/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/questions/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoteQuestion_Idempotent(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedQuestion(t, db, alice.ID, "Subject", "Content")

	app := fiber.New()
	app.Post("/questions/:id/vote", asUser(bob.ID), s.VoteQuestion)
	app.Get("/questions/:id", s.GetQuestion)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/questions/1/vote", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/questions/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["vote_count"])
}

func TestListQuestions_Pagination(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		question := &models.Question{
			Subject:   "Question",
			Content:   "Content",
			AuthorID:  alice.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(question).Error)
	}

	app := fiber.New()
	app.Get("/questions", s.ListQuestions)

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(12), body["total_count"])
	assert.Equal(t, float64(0), body["page"])
	items := body["items"].([]any)
	assert.Len(t, items, 10)

	req = httptest.NewRequest(http.MethodGet, "/questions?page=1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body = decodeBody(t, resp)
	items = body["items"].([]any)
	assert.Len(t, items, 2)

	// Beyond the last page: still a valid, empty page.
	req = httptest.NewRequest(http.MethodGet, "/questions?page=9", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body = decodeBody(t, resp)
	items = body["items"].([]any)
	assert.Empty(t, items)
}

func TestListQuestions_Keyword(t *testing.T) {
	s, db := setupTestServer(t)
	alice := seedUser(t, db, "alice")
	match := seedQuestion(t, db, alice.ID, "sbb가 무엇인가요?", "sbb에 대해서 알고 싶습니다.")
	seedQuestion(t, db, alice.ID, "다른 질문", "다른 내용")

	app := fiber.New()
	app.Get("/questions", s.ListQuestions)

	req := httptest.NewRequest(http.MethodGet, "/questions?kw=sbb", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total_count"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(match.ID), first["id"])
}
