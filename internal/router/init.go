package router

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/config"
	"github.com/oksasatya/customer-directory/internal/application"
	"github.com/oksasatya/customer-directory/internal/container"
	"github.com/oksasatya/customer-directory/internal/domain/auth"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
	"github.com/oksasatya/customer-directory/internal/infrastructure/cache"
	"github.com/oksasatya/customer-directory/internal/infrastructure/gcs"
	"github.com/oksasatya/customer-directory/internal/infrastructure/gormstore"
	"github.com/oksasatya/customer-directory/internal/infrastructure/memory"
	"github.com/oksasatya/customer-directory/internal/infrastructure/notify"
	pginfra "github.com/oksasatya/customer-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/customer-directory/internal/infrastructure/search"
	handlers "github.com/oksasatya/customer-directory/internal/interface/http"
	"github.com/oksasatya/customer-directory/internal/router/modules"
	"github.com/oksasatya/customer-directory/pkg/helpers"
)

type CustomerModuleDeps struct {
	Repo            repository.CustomerRepository
	Blobs           repository.BlobStore
	Customers       *application.CustomerService
	Auth            *application.AuthService
	CustomerHandler *handlers.CustomerHandler
	AuthHandler     *handlers.AuthHandler
}

// BuildCustomerDeps wires services and handlers on top of the given stores.
// Search and notifications are attached separately because they are optional.
func BuildCustomerDeps(cfg *config.Config, logger *logrus.Logger, repo repository.CustomerRepository, blobs repository.BlobStore, tokens auth.TokenSigner) CustomerModuleDeps {
	hasher := helpers.NewBcryptHasher(cfg.BcryptCost)
	customers := application.NewCustomerService(repo, blobs, hasher, cfg.GCSBucket, logger)
	authSvc := application.NewAuthService(repo, hasher, tokens, logger)

	return CustomerModuleDeps{
		Repo:            repo,
		Blobs:           blobs,
		Customers:       customers,
		Auth:            authSvc,
		CustomerHandler: handlers.NewCustomerHandler(customers, authSvc, logger, cfg.MaxImageBytes),
		AuthHandler:     handlers.NewAuthHandler(authSvc, logger),
	}
}

// buildRepository picks the record store named by STORE_BACKEND and puts the
// Redis cache in front of it when Redis is configured.
func buildRepository(cfg *config.Config, logger *logrus.Logger) repository.CustomerRepository {
	var repo repository.CustomerRepository
	switch cfg.StoreBackend {
	case config.StorePostgres:
		repo = pginfra.NewCustomerRepository(container.GetPGPool())
	case config.StoreGorm:
		repo = gormstore.NewCustomerRepository(container.GetGormDB())
	default:
		repo = memory.NewCustomerRepository()
	}
	if rdb := container.GetRedis(); rdb != nil {
		repo = cache.NewCustomerRepository(repo, rdb, cfg.CacheTTL, logger)
	}
	logger.WithFields(logrus.Fields{"store": cfg.StoreBackend, "cache": container.GetRedis() != nil}).Info("record store selected")
	return repo
}

func buildBlobStore(cfg *config.Config, logger *logrus.Logger) repository.BlobStore {
	if cfg.BlobBackend == config.BlobGCS && container.GetGCS() != nil {
		logger.WithField("bucket", cfg.GCSBucket).Info("blob store: gcs")
		return gcs.NewBlobStore(container.GetGCS())
	}
	logger.Info("blob store: memory")
	return memory.NewBlobStore()
}

// InitModules initializes all application modules and registers them with the router registry.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	deps := BuildCustomerDeps(cfg, logger, buildRepository(cfg, logger), buildBlobStore(cfg, logger), container.GetJWT())
	if es := container.GetES(); es != nil {
		deps.Customers.Index = search.NewCustomerIndex(es, cfg.ESCustomersIndex, logger)
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		deps.Customers.Notifier = notify.NewEmailNotifier(pub, cfg.AppName)
	}

	r.Add(modules.NewAuthModule(deps.AuthHandler))
	r.Add(modules.NewCustomerModule(deps.CustomerHandler, deps.Auth))
	if m := container.GetMetrics(); m != nil && cfg.MetricsEnabled {
		r.Add(modules.NewMetricsModule(m))
	}
}
