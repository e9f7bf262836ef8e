package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/lifecycle"
	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/mykafka"
	"github.com/eduforge/lms/internal/storage"
)

type VideoHandler struct {
	Videos   *lifecycle.Manager[models.Video]
	Files    *storage.Store
	Producer *mykafka.Producer
}

// UploadVideo stores the binary first, then inserts the record. On insert
// failure the lifecycle manager unlinks the just-written file.
func (h *VideoHandler) UploadVideo(c echo.Context) error {
	teacherID, err := strconv.Atoi(c.FormValue("teacher_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	defer src.Close()

	url, err := h.Files.Save(fh.Filename, src)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyUpload) {
			return echo.NewHTTPError(http.StatusBadRequest, "Uploaded file is empty.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to write file.")
	}

	video := models.Video{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		TeacherID:   uint(teacherID),
		TeacherName: c.FormValue("teacher_name"),
		VideoURL:    url,
	}
	if err := h.Videos.Create(c.Request().Context(), &video); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	event := map[string]interface{}{
		"type":    "video_uploaded",
		"videoID": video.ID,
		"title":   video.Title,
	}
	publish(c, h.Producer, "video_events", fmt.Sprint(video.ID), event)

	return c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) GetVideos(c echo.Context) error {
	videos, err := h.Videos.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, videos)
}

func (h *VideoHandler) GetVideo(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	video, err := h.Videos.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Video not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := h.Videos.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Video not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	event := map[string]interface{}{
		"type":    "video_deleted",
		"videoID": id,
	}
	publish(c, h.Producer, "video_events", fmt.Sprint(id), event)

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
