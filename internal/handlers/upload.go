package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eduforge/lms/internal/storage"
)

type UploadHandler struct {
	PDFs *storage.Store
}

func (h *UploadHandler) UploadPDF(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	defer src.Close()

	url, err := h.PDFs.Save(fh.Filename, src)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyUpload) {
			return echo.NewHTTPError(http.StatusBadRequest, "Uploaded file is empty.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save PDF.")
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

func (h *UploadHandler) DeletePDF(c echo.Context) error {
	url := c.QueryParam("url")

	if err := h.PDFs.Delete(url); err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidRef):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid PDF url")
		case errors.Is(err, storage.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "PDF not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
