package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/SyaefulEffendi/bahasaku-server/internal/service"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DetectionHandler struct {
	detectionService service.DetectionService
	log              *zap.Logger
}

func NewDetectionHandler(detectionService service.DetectionService, log *zap.Logger) *DetectionHandler {
	return &DetectionHandler{
		detectionService: detectionService,
		log:              log,
	}
}

func (h *DetectionHandler) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, h.log, fmt.Errorf("%w: no image sent", apperror.ErrBadRequest))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, h.log, fmt.Errorf("%w: could not read uploaded image", apperror.ErrBadRequest))
		return
	}
	defer f.Close()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, h.log, fmt.Errorf("%w: could not read uploaded image", apperror.ErrBadRequest))
		return
	}

	result, err := h.detectionService.Predict(c.Request.Context(), imageBytes)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
