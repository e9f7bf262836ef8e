package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/lifecycle"
	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/mykafka"
)

type CourseHandler struct {
	Courses  *lifecycle.Manager[models.Course]
	Producer *mykafka.Producer
}

type courseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TeacherID   uint   `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	PDFURL      string `json:"pdf_url"`
}

func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	course := models.Course{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		TeacherName: req.TeacherName,
		PDFURL:      req.PDFURL,
	}
	if err := h.Courses.Create(c.Request().Context(), &course); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	event := map[string]interface{}{
		"type":     "course_created",
		"courseID": course.ID,
		"title":    course.Title,
	}
	publish(c, h.Producer, "course_events", fmt.Sprint(course.ID), event)

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	course, err := h.Courses.Update(c.Request().Context(), id, func(course *models.Course) {
		course.Title = req.Title
		course.Description = req.Description
		course.TeacherID = req.TeacherID
		course.TeacherName = req.TeacherName
		course.PDFURL = req.PDFURL
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) GetCourses(c echo.Context) error {
	courses, err := h.Courses.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	course, err := h.Courses.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := h.Courses.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Course not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	event := map[string]interface{}{
		"type":     "course_deleted",
		"courseID": id,
	}
	publish(c, h.Producer, "course_events", fmt.Sprint(id), event)

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
