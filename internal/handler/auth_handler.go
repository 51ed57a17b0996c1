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

type AuthHandler struct {
	authService service.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	// A caller is present only when the request carried a valid token.
	var callerID *uint
	if id, err := response.GetUserID(c); err == nil {
		callerID = &id
	}

	res, err := h.authService.Register(c.Request.Context(), input, callerID)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, pkgvalidator.FormatValidationError(err))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
