package provider

import (
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/authz"
	"github.com/1983adrian/adimarketplace-sub002/internal/cache"
	"github.com/1983adrian/adimarketplace-sub002/internal/config"
	"github.com/1983adrian/adimarketplace-sub002/internal/logger"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/queue"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"
	"github.com/1983adrian/adimarketplace-sub002/internal/service"
)

// Container wires repositories and services for the handlers and workers.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	ListingRepo      repository.ListingRepository
	OrderRepo        repository.OrderRepository
	ReturnRepo       repository.ReturnRepository
	RefundRepo       repository.RefundRepository
	NotificationRepo repository.NotificationRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	CaptchaService      *service.CaptchaService
	OrderService        *service.OrderService
	ReturnService       *service.ReturnService
	RefundService       *service.RefundService
	NotificationService *service.NotificationService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ListingRepo = repository.NewListingRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReturnRepo = repository.NewReturnRepository(db)
	c.RefundRepo = repository.NewRefundRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	listCacheTTL := time.Duration(c.Config.Returns.ListCacheTTLSeconds) * time.Second

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.ReturnService = service.NewReturnService(c.ReturnRepo, c.RefundRepo, c.OrderRepo, c.UserRepo, c.QueueClient, c.Config.Returns.FilingWindowDays, listCacheTTL)
	c.RefundService = service.NewRefundService(c.RefundRepo, listCacheTTL)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
}
