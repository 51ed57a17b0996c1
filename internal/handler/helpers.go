package handler

import (
	"fmt"
	"strconv"

	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", apperror.ErrInvalidInput, raw)
	}
	return uint(id), nil
}

// formFile returns the named multipart file, or nil when the field is absent.
// The cleanup func is always safe to defer.
func formFile(c *gin.Context, field string) (*dto.FileUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: could not read uploaded file", apperror.ErrInvalidInput)
	}
	return &dto.FileUpload{Reader: f, FileName: fileHeader.Filename}, func() { f.Close() }, nil
}
