package admin

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ProductUpsertRequest 商品保存请求
type ProductUpsertRequest struct {
	ID          uint               `json:"id"`
	Slug        string             `json:"slug" binding:"required"`
	Title       models.JSON        `json:"title" binding:"required"`
	Description models.JSON        `json:"description"`
	Images      models.StringArray `json:"images"`
	Tags        models.StringArray `json:"tags"`
	IsActive    bool               `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
}

// VariantUpsertRequest 规格保存请求
type VariantUpsertRequest struct {
	ID             uint         `json:"id"`
	ProductID      uint         `json:"product_id" binding:"required"`
	SKUCode        string       `json:"sku_code" binding:"required"`
	SpecValues     models.JSON  `json:"spec_values"`
	BasePrice      models.Money `json:"base_price" binding:"min=0"`
	DiscountAmount models.Money `json:"discount_amount" binding:"min=0"`
	StockTotal     int          `json:"stock_total" binding:"min=0"`
	IsActive       bool         `json:"is_active"`
	SortOrder      int          `json:"sort_order"`
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       c.Query("search"),
		WithVariants: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	response.Success(c, product)
}

// SaveAdminProduct 创建或更新商品 (Admin)
func (h *Handler) SaveAdminProduct(c *gin.Context) {
	var req ProductUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product := &models.Product{
		ID:              req.ID,
		Slug:            req.Slug,
		TitleJSON:       req.Title,
		DescriptionJSON: req.Description,
		Images:          req.Images,
		Tags:            req.Tags,
		IsActive:        req.IsActive,
		SortOrder:       req.SortOrder,
	}
	if err := h.ProductService.Save(product); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, product)
}

// DeleteAdminProduct 删除商品 (Admin)
func (h *Handler) DeleteAdminProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SaveAdminVariant 创建或更新商品规格 (Admin)
func (h *Handler) SaveAdminVariant(c *gin.Context) {
	var req VariantUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	variant := &models.ProductVariant{
		ID:             req.ID,
		ProductID:      req.ProductID,
		SKUCode:        req.SKUCode,
		SpecValuesJSON: req.SpecValues,
		BasePrice:      req.BasePrice,
		DiscountAmount: req.DiscountAmount,
		StockTotal:     req.StockTotal,
		IsActive:       req.IsActive,
		SortOrder:      req.SortOrder,
	}
	if err := h.ProductService.SaveVariant(variant); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, variant)
}

// DeleteAdminVariant 删除商品规格 (Admin)
func (h *Handler) DeleteAdminVariant(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteVariant(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func parsePathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
