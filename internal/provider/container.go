package provider

import (
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config        *config.Config
	QueueClient   *queue.Client
	ScheduleCache *cache.ScheduleCache

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	VariantRepo   repository.VariantRepository
	PriceTierRepo repository.PriceTierRepository
	PwpRuleRepo   repository.PwpRuleRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	RefundRepo    repository.RefundRepository
	CouponRepo    repository.CouponRepository
	MemberRepo    repository.MemberRepository
	SettingRepo   repository.SettingRepository

	// Services
	AuthService       *service.AuthService
	UserAuthService   *service.UserAuthService
	SettingService    *service.SettingService
	ProductService    *service.ProductService
	TierAdminService  *service.TierAdminService
	PwpService        *service.PwpService
	PriceSyncService  *service.PriceSyncService
	CouponService     *service.CouponService
	PointsService     *service.PointsService
	MembershipService *service.MembershipService
	CartService       *service.CartService
	OrderService      *service.OrderService
	RefundService     *service.RefundService
	AnalyticsService  *service.AnalyticsService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	ttl := time.Duration(cfg.Pricing.ScheduleCacheTTLSeconds) * time.Second
	c := &Container{
		Config:        cfg,
		QueueClient:   queueClient,
		ScheduleCache: cache.NewScheduleCache(ttl, time.Now),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewVariantRepository(db)
	c.PriceTierRepo = repository.NewPriceTierRepository(db)
	c.PwpRuleRepo = repository.NewPwpRuleRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.RefundRepo = repository.NewRefundRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.MemberRepo = repository.NewMemberRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.PriceSyncService = service.NewPriceSyncService(c.VariantRepo, c.ScheduleCache)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo, c.PriceSyncService)
	c.TierAdminService = service.NewTierAdminService(c.VariantRepo, c.PriceTierRepo, c.PriceSyncService)
	c.PwpService = service.NewPwpService(c.PwpRuleRepo, c.VariantRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.PointsService = service.NewPointsService(c.MemberRepo, c.SettingService)
	c.MembershipService = service.NewMembershipService(c.MemberRepo, c.UserRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.VariantRepo, c.PwpService, c.PriceSyncService)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.CouponService,
		c.PointsService,
		c.MembershipService,
		c.SettingService,
		c.PriceSyncService,
		c.MemberRepo,
		c.QueueClient,
		c.Config.Order.PaymentExpireMinutes,
	)
	c.RefundService = service.NewRefundService(c.OrderRepo, c.RefundRepo)
	c.AnalyticsService = service.NewAnalyticsService(c.OrderRepo)
}
