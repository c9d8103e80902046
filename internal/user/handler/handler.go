package handler

import (
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/request"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/fekuna/omnipos-catalog-service/internal/user"
	"github.com/fekuna/omnipos-catalog-service/internal/user/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewAuthHandler(uc user.UseCase, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts /auth. loginLimit guards the login endpoint.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, loginLimit, requireAuth gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	authGroup.POST("/login", loginLimit, h.Login)
	authGroup.GET("/me", requireAuth, h.Me)
}

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if msg, ok := request.BindJSON(c, &body); !ok {
		response.BadRequest(c, msg)
		return
	}

	res, err := h.uc.Authenticate(c.Request.Context(), &dto.LoginInput{Email: body.Email, Password: body.Password})
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		response.BadRequest(c, "Failed to log in")
		return
	}

	response.OK(c, "Login successful", res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller := auth.CallerID(c)
	if caller == nil {
		response.Unauthorized(c, "No token provided")
		return
	}

	u, err := h.uc.GetUser(c.Request.Context(), *caller)
	if err != nil {
		response.BadRequest(c, "Failed to fetch user")
		return
	}
	if u == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.OK(c, "User fetched successfully", u)
}
