package handler

import (
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/request"
	"github.com/fekuna/omnipos-catalog-service/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const msgNotFound = "Product not found"

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	products := rg.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.POST("", requireAuth, h.CreateProduct)
	products.PUT("/:id", requireAuth, h.UpdateProduct)
	products.PATCH("/:id/stock", requireAuth, h.AdjustStock)
	products.DELETE("/:id", requireAuth, h.DeleteProduct)
}

type createProductBody struct {
	Name       string           `json:"name" binding:"required,max=255"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	Stock      *int             `json:"stock" binding:"omitempty,min=0"`
	CategoryID string           `json:"category_id" binding:"required,uuid"`
}

// PUT replaces every writable field, so stock is mandatory here.
type updateProductBody struct {
	Name       string           `json:"name" binding:"required,max=255"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	Stock      *int             `json:"stock" binding:"required,min=0"`
	CategoryID string           `json:"category_id" binding:"required,uuid"`
}

type stockBody struct {
	Delta *int `json:"delta" binding:"required"`
}

func checkFields(name *string, price *decimal.Decimal) string {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return "name is required"
	}
	if price.IsNegative() {
		return "price must not be negative"
	}
	return ""
}

// writeError answers a failed write. A category_id rejected by the foreign
// key is reported as such, anything else as a generic failure.
func (h *ProductHandler) writeError(c *gin.Context, err error, message string) {
	if database.IsForeignKeyViolation(err) {
		response.BadRequest(c, "Category not found")
		return
	}
	h.logger.Error(message, zap.Error(err))
	response.BadRequest(c, message)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	result, err := h.uc.ListProducts(c.Request.Context(), request.ListRequest(c))
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		response.BadRequest(c, "Failed to fetch products")
		return
	}

	response.OK(c, "Products fetched successfully", result)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get product", zap.String("product_id", id), zap.Error(err))
		response.BadRequest(c, "Failed to fetch product")
		return
	}
	if p == nil {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Product fetched successfully", p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var body createProductBody
	if msg, ok := request.BindJSON(c, &body); !ok {
		response.BadRequest(c, msg)
		return
	}
	if msg := checkFields(&body.Name, body.Price); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	input := &dto.CreateProductInput{
		Name:       body.Name,
		Price:      *body.Price,
		CategoryID: body.CategoryID,
		CallerID:   auth.CallerID(c),
	}
	if body.Stock != nil {
		input.Stock = *body.Stock
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err, "Failed to create product")
		return
	}

	response.Created(c, "Product created successfully", p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	var body updateProductBody
	if msg, ok := request.BindJSON(c, &body); !ok {
		response.BadRequest(c, msg)
		return
	}
	if msg := checkFields(&body.Name, body.Price); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:         id,
		Name:       body.Name,
		Price:      *body.Price,
		Stock:      *body.Stock,
		CategoryID: body.CategoryID,
		CallerID:   auth.CallerID(c),
	})
	if err != nil {
		h.writeError(c, err, "Failed to update product")
		return
	}
	if p == nil {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Product updated successfully", p)
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	var body stockBody
	if msg, ok := request.BindJSON(c, &body); !ok {
		response.BadRequest(c, msg)
		return
	}

	applied, err := h.uc.AdjustStock(c.Request.Context(), id, *body.Delta, auth.CallerID(c))
	if err != nil {
		response.BadRequest(c, "Failed to adjust stock")
		return
	}
	if !applied {
		response.NotFound(c, "Product not found or insufficient stock")
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil || p == nil {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Stock adjusted successfully", p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := request.ID(c)
	if !ok {
		response.NotFound(c, msgNotFound)
		return
	}

	deleted, err := h.uc.DeleteProduct(c.Request.Context(), id, auth.CallerID(c))
	if err != nil {
		response.BadRequest(c, "Failed to delete product")
		return
	}
	if !deleted {
		response.NotFound(c, msgNotFound)
		return
	}

	response.OK(c, "Product deleted successfully", gin.H{"id": id})
}
