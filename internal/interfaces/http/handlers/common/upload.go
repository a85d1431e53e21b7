// Package common holds request parsing shared by the agent and admin handlers.
package common

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/estatery/estatery/internal/infrastructure/storage"
	"github.com/estatery/estatery/internal/shared/errors"
)

// ImagesField is the repeated multipart field carrying listing images.
const ImagesField = "images"

// Uploads returns the image parts of a multipart request, or nil for any
// other content type.
func Uploads(c *gin.Context) ([]storage.Upload, error) {
	if !IsMultipart(c) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.NewBadRequestError("invalid multipart form", err.Error())
	}

	files := form.File[ImagesField]
	uploads := make([]storage.Upload, 0, len(files))
	for _, fh := range files {
		uploads = append(uploads, storage.Upload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return uploads, nil
}

func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm)
}
