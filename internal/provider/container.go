package provider

import (
	"github.com/akoudje/appfbo-backend/internal/authz"
	"github.com/akoudje/appfbo-backend/internal/cache"
	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/queue"
	"github.com/akoudje/appfbo-backend/internal/repository"
	"github.com/akoudje/appfbo-backend/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	FboRepo           repository.FboRepository
	ProductRepo       repository.ProductRepository
	GradeDiscountRepo repository.GradeDiscountRepository
	PreorderRepo      repository.PreorderRepository
	StatsRepo         repository.StatsRepository
	AuditLogRepo      repository.AdminAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	UploadService       *service.UploadService
	DiscountService     *service.DiscountService
	PricingService      *service.PricingService
	PreorderService     *service.PreorderService
	ProductService      *service.ProductService
	StatsService        *service.StatsService
	NotificationService *service.NotificationService
	AuditService        *service.AuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时返回禁用态客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(models.DB)

	// 2. 初始化 Services
	c.initServices(models.DB)

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.FboRepo = repository.NewFboRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.GradeDiscountRepo = repository.NewGradeDiscountRepository(db)
	c.PreorderRepo = repository.NewPreorderRepository(db)
	c.StatsRepo = repository.NewStatsRepository(db)
	c.AuditLogRepo = repository.NewAdminAuditLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	billingNumbers := c.Config.Billing.WhatsappNumbers

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.DiscountService = service.NewDiscountService(c.GradeDiscountRepo)
	c.PricingService = service.NewPricingService(c.PreorderRepo, c.DiscountService, c.Config.Delivery)
	c.PreorderService = service.NewPreorderService(
		c.PreorderRepo,
		c.ProductRepo,
		c.FboRepo,
		c.PricingService,
		c.QueueClient,
		billingNumbers,
		c.Config.Preorder,
	)
	c.ProductService = service.NewProductService(c.ProductRepo, c.Config.Catalog.CacheTTLSeconds)
	c.StatsService = service.NewStatsService(c.StatsRepo)
	c.NotificationService = service.NewNotificationService(c.PreorderRepo, c.Config.Notification, billingNumbers)
	c.AuditService = service.NewAuditService(c.AuditLogRepo)
}
