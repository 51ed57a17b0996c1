package handler

import (
	"net/http"

	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/internal/service"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/response"
	pkgvalidator "github.com/SyaefulEffendi/bahasaku-server/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type KosaKataHandler struct {
	kosaKataService service.KosaKataService
	log             *zap.Logger
}

func NewKosaKataHandler(kosaKataService service.KosaKataService, log *zap.Logger) *KosaKataHandler {
	return &KosaKataHandler{
		kosaKataService: kosaKataService,
		log:             log,
	}
}

func (h *KosaKataHandler) GetAll(c *gin.Context) {
	items, err := h.kosaKataService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *KosaKataHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	item, err := h.kosaKataService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *KosaKataHandler) Create(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	var input dto.CreateKosaKataInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	video, closeVideo, err := formFile(c, "video")
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closeVideo()

	item, err := h.kosaKataService.Create(c.Request.Context(), callerID, input, video)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "vocabulary entry created",
		"kosa_kata": item,
	})
}

func (h *KosaKataHandler) Update(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	var input dto.UpdateKosaKataInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	video, closeVideo, err := formFile(c, "video")
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closeVideo()

	item, err := h.kosaKataService.Update(c.Request.Context(), callerID, id, input, video)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "vocabulary entry updated",
		"kosa_kata": item,
	})
}

func (h *KosaKataHandler) Delete(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	if err := h.kosaKataService.Delete(c.Request.Context(), callerID, id); err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vocabulary entry deleted"})
}
