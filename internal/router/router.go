package router

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	adminhandlers "github.com/storefront-next/internal/http/handlers/admin"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisKeyPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetUserProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.DeleteCartItem)
			user.POST("/cart/reprice", publicHandler.RepriceCart)
			user.GET("/cart/pwp-offers", publicHandler.GetPwpOffers)
			user.POST("/orders", publicHandler.CreateOrder)
			user.POST("/orders/preview", publicHandler.PreviewCheckout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:order_no", publicHandler.GetOrderByNo)
			user.POST("/orders/:order_no/cancel", publicHandler.CancelOrder)
			user.POST("/orders/:order_no/returns", publicHandler.RequestReturn)
			user.GET("/orders/:order_no/refunds", publicHandler.ListOrderRefunds)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/profile", adminHandler.GetAdminProfile)
				authorized.PUT("/password", adminHandler.AdminChangePassword)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.SaveAdminProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteAdminProduct)
				authorized.POST("/variants", adminHandler.SaveAdminVariant)
				authorized.DELETE("/variants/:id", adminHandler.DeleteAdminVariant)

				// 阶梯价管理
				authorized.GET("/variants/:variant_id/tiers", adminHandler.GetAdminTiers)
				authorized.PUT("/variants/:variant_id/tiers", adminHandler.ReplaceAdminTiers)
				authorized.PUT("/variants/:variant_id/discount", adminHandler.UpdateAdminVariantDiscount)
				authorized.POST("/pricing/cache/invalidate", adminHandler.InvalidatePricingCache)

				// 加价购规则
				authorized.GET("/pwp-rules", adminHandler.GetAdminPwpRules)
				authorized.POST("/pwp-rules", adminHandler.SaveAdminPwpRule)
				authorized.DELETE("/pwp-rules/:id", adminHandler.DeleteAdminPwpRule)

				// 优惠券管理
				authorized.GET("/coupons", adminHandler.GetAdminCoupons)
				authorized.POST("/coupons", adminHandler.SaveAdminCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteAdminCoupon)

				// 会员等级与活动
				authorized.GET("/member-tiers", adminHandler.GetAdminMemberTiers)
				authorized.POST("/member-tiers", adminHandler.SaveAdminMemberTier)
				authorized.DELETE("/member-tiers/:id", adminHandler.DeleteAdminMemberTier)
				authorized.GET("/member-promos", adminHandler.GetAdminMemberPromos)
				authorized.POST("/member-promos", adminHandler.SaveAdminMemberPromo)
				authorized.DELETE("/member-promos/:id", adminHandler.DeleteAdminMemberPromo)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.POST("/orders/:id/paid", adminHandler.MarkAdminOrderPaid)
				authorized.POST("/orders/:id/cancel", adminHandler.CancelAdminOrder)

				// 退款管理
				authorized.GET("/refunds", adminHandler.GetAdminRefunds)
				authorized.POST("/refunds/:id/review", adminHandler.ReviewAdminRefund)

				// 营收统计
				authorized.GET("/revenue/report", adminHandler.GetAdminRevenueReport)
				authorized.GET("/revenue/daily/:date", adminHandler.GetAdminDailyRevenue)
				authorized.POST("/revenue/rollup/:date", adminHandler.EnqueueAdminRevenueRollup)

				// 设置管理
				authorized.GET("/settings/:key", adminHandler.GetAdminSetting)
				authorized.PUT("/settings/:key", adminHandler.UpdateAdminSetting)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
