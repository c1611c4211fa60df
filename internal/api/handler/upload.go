package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/miniblog/blog-api/internal/core/ports"
)

// stageUpload pulls the named multipart file, rejects anything that is not an
// image, and stages it on disk. Returns nil when the request carries no file
// for that field.
func stageUpload(c echo.Context, files ports.FileManager, field, prefix string) (*ports.StagedUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent field or non-multipart body: the upload is optional.
		return nil, nil
	}

	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "the file must be an image")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	staged, err := files.Stage(src, fh.Filename, prefix)
	if err != nil {
		return nil, err
	}
	return &staged, nil
}
