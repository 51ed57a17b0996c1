package handler

import (
	"net/http"
	"strconv"

	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/internal/service"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/response"
	pkgvalidator "github.com/SyaefulEffendi/bahasaku-server/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InformationHandler struct {
	informationService service.InformationService
	log                *zap.Logger
}

func NewInformationHandler(informationService service.InformationService, log *zap.Logger) *InformationHandler {
	return &InformationHandler{
		informationService: informationService,
		log:                log,
	}
}

func (h *InformationHandler) GetAll(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := h.informationService.GetAll(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *InformationHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	item, err := h.informationService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InformationHandler) Create(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	var input dto.CreateInformationInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	image, closeImage, err := formFile(c, "image")
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closeImage()

	item, err := h.informationService.Create(c.Request.Context(), callerID, input, image)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "information created",
		"information": item,
	})
}

func (h *InformationHandler) Update(c *gin.Context) {
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

	var input dto.UpdateInformationInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	image, closeImage, err := formFile(c, "image")
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closeImage()

	item, err := h.informationService.Update(c.Request.Context(), callerID, id, input, image)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "information updated",
		"information": item,
	})
}

func (h *InformationHandler) Delete(c *gin.Context) {
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

	if err := h.informationService.Delete(c.Request.Context(), callerID, id); err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "information deleted"})
}
