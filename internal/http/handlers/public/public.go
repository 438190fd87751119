package public

import (
	"strconv"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/constants"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// PublicVariantView 公共规格响应结构
type PublicVariantView struct {
	models.ProductVariant
	StockAvailable int  `json:"stock_available"`
	IsSoldOut      bool `json:"is_sold_out"`
}

// GetConfig 获取全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	// 默认配置
	defaults := map[string]interface{}{
		"languages":                        constants.SupportedLocales,
		constants.SettingFieldSiteCurrency: constants.SiteCurrencyDefault,
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		requestLog(c).Warnw("public_config_cache_set_failed", "error", err)
	}
	response.Success(c, data)
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       c.Query("search"),
		OnlyActive:   true,
		WithVariants: true,
	}
	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": products}, response.NewPagination(page, pageSize, total))
}

// GetProductBySlug 按标识获取商品详情（含规格、阶梯价与库存状态）
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	product, err := h.ProductService.GetBySlug(slug)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if product == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	variants := make([]PublicVariantView, 0, len(product.Variants))
	for _, variant := range product.Variants {
		if !variant.IsActive {
			continue
		}
		available := variant.StockTotal - variant.StockLocked - variant.StockSold
		view := PublicVariantView{
			ProductVariant: variant,
			StockAvailable: available,
			IsSoldOut:      variant.StockTotal > 0 && available <= 0,
		}
		if variant.StockTotal == 0 {
			// 未启用库存控制时视为可售
			view.StockAvailable = 0
			view.IsSoldOut = false
		}
		variants = append(variants, view)
	}

	response.Success(c, gin.H{
		"product":  product,
		"variants": variants,
	})
}
