package handler

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/request"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgNotFound = "Category not found"

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterRoutes mounts the category endpoints. Writes go through requireAuth.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	categories := rg.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.GET("/:id", h.GetCategory)
	categories.POST("", requireAuth, h.CreateCategory)
	categories.PUT("/:id", requireAuth, h.UpdateCategory)
	categories.DELETE("/:id", requireAuth, h.DeleteCategory)
}

type categoryBody struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (b *categoryBody) normalize() string {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return "name is required"
	}
	return ""
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	result, err := h.uc.ListCategories(c.Request.Context(), request.ListRequest(c))
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		response.BadRequest(c, "Failed to fetch categories")
		return
	}

	response.OK(c, "Categories fetched successfully", result)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get category", zap.String("category_id", id), zap.Error(err))
		response.BadRequest(c, "Failed to fetch category")
		return
	}
	if cat == nil {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Category fetched successfully", cat)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var body categoryBody
	if msg, ok := request.BindJSON(c, &body); !ok {
		response.BadRequest(c, msg)
		return
	}
	if msg := body.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &dto.CreateCategoryInput{
		Name:     body.Name,
		CallerID: auth.CallerID(c),
	})
	if err != nil {
		response.BadRequest(c, "Failed to create category")
		return
	}

	response.Created(c, "Category created successfully", cat)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	var body categoryBody
	if msg, ok := request.BindJSON(c, &body); !ok {
		response.BadRequest(c, msg)
		return
	}
	if msg := body.normalize(); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &dto.UpdateCategoryInput{
		ID:       id,
		Name:     body.Name,
		CallerID: auth.CallerID(c),
	})
	if err != nil {
		response.BadRequest(c, "Failed to update category")
		return
	}
	if cat == nil {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Category updated successfully", cat)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	deleted, err := h.uc.DeleteCategory(c.Request.Context(), id, auth.CallerID(c))
	if err != nil {
		response.BadRequest(c, "Failed to delete category")
		return
	}
	if !deleted {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Category deleted successfully", gin.H{"id": id})
}
