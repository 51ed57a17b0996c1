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

type UserHandler struct {
	userService service.UserService
	log         *zap.Logger
}

func NewUserHandler(userService service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

func (h *UserHandler) GetAll(c *gin.Context) {
	callerID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	users, err := h.userService.GetAll(c.Request.Context(), callerID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
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

	user, err := h.userService.GetByID(c.Request.Context(), callerID, id)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
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

	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), callerID, id, input)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Delete(c *gin.Context) {
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

	if err := h.userService.Delete(c.Request.Context(), callerID, id); err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

func (h *UserHandler) UploadPhoto(c *gin.Context) {
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

	photo, closePhoto, err := formFile(c, "photo")
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer closePhoto()

	user, err := h.userService.UploadPhoto(c.Request.Context(), callerID, id, photo)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile photo uploaded successfully",
		"user":    user,
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
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

	var input dto.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), callerID, id, input); err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}
