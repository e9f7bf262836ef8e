package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/lifecycle"
	"github.com/eduforge/lms/internal/models"
)

type QuizHandler struct {
	Quizzes   *lifecycle.Manager[models.Quiz]
	Questions *lifecycle.Manager[models.Question]
	Results   *lifecycle.Manager[models.QuizResult]
}

type questionRequest struct {
	QuizID             uint     `json:"quiz_id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

type questionOut struct {
	ID                 uint     `json:"id"`
	QuizID             uint     `json:"quiz_id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
}

func questionToOut(q *models.Question) questionOut {
	return questionOut{
		ID:                 q.ID,
		QuizID:             q.QuizID,
		Text:               q.Text,
		Options:            strings.Split(q.Options, ","),
		CorrectOptionIndex: q.CorrectOptionIndex,
	}
}

func (h *QuizHandler) CreateQuiz(c echo.Context) error {
	var req struct {
		CourseID uint   `json:"course_id"`
		Title    string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	quiz := models.Quiz{CourseID: req.CourseID, Title: req.Title}
	if err := h.Quizzes.Create(c.Request().Context(), &quiz); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) UpdateQuiz(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var req struct {
		CourseID uint   `json:"course_id"`
		Title    string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	quiz, err := h.Quizzes.Update(c.Request().Context(), id, func(quiz *models.Quiz) {
		quiz.Title = req.Title
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Quiz not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) GetQuizzes(c echo.Context) error {
	quizzes, err := h.Quizzes.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	quiz, err := h.Quizzes.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Quiz not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) CreateQuestion(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	question := models.Question{
		QuizID:             req.QuizID,
		Text:               req.Text,
		Options:            strings.Join(req.Options, ","),
		CorrectOptionIndex: req.CorrectOptionIndex,
	}
	if err := h.Questions.Create(c.Request().Context(), &question); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, questionToOut(&question))
}

func (h *QuizHandler) UpdateQuestion(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	question, err := h.Questions.Update(c.Request().Context(), id, func(q *models.Question) {
		q.Text = req.Text
		q.Options = strings.Join(req.Options, ",")
		q.CorrectOptionIndex = req.CorrectOptionIndex
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Question not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, questionToOut(question))
}

// GetQuestions lists the questions of one quiz.
func (h *QuizHandler) GetQuestions(c echo.Context) error {
	quizID, err := paramID(c, "quiz_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var questions []models.Question
	if err := h.Questions.DB.WithContext(c.Request().Context()).
		Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	out := make([]questionOut, 0, len(questions))
	for i := range questions {
		out = append(out, questionToOut(&questions[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *QuizHandler) CreateResult(c echo.Context) error {
	var req struct {
		UserID         uint   `json:"user_id"`
		QuizID         uint   `json:"quiz_id"`
		Score          int    `json:"score"`
		TotalQuestions int    `json:"total_questions"`
		CompletedAt    string `json:"completed_at"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	result := models.QuizResult{
		UserID:         req.UserID,
		QuizID:         req.QuizID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CompletedAt:    req.CompletedAt,
	}
	if err := h.Results.Create(c.Request().Context(), &result); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetResults lists one user's quiz results.
func (h *QuizHandler) GetResults(c echo.Context) error {
	userID, err := paramID(c, "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var results []models.QuizResult
	if err := h.Results.DB.WithContext(c.Request().Context()).
		Where("user_id = ?", userID).Find(&results).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, results)
}
