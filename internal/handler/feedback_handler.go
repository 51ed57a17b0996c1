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

type FeedbackHandler struct {
	feedbackService service.FeedbackService
	log             *zap.Logger
}

func NewFeedbackHandler(feedbackService service.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		log:             log,
	}
}

func (h *FeedbackHandler) GetAll(c *gin.Context) {
	items, err := h.feedbackService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *FeedbackHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	item, err := h.feedbackService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	var input dto.CreateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	item, err := h.feedbackService.Create(c.Request.Context(), callerID, input)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "feedback submitted",
		"feedback": item,
	})
}

func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
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

	var input dto.UpdateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	item, err := h.feedbackService.UpdateStatus(c.Request.Context(), callerID, id, input)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "feedback status updated",
		"feedback": item,
	})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
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

	if err := h.feedbackService.Delete(c.Request.Context(), callerID, id); err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "feedback deleted"})
}
