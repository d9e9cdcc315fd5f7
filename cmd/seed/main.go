package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/oksasatya/customer-directory/config"
	"github.com/oksasatya/customer-directory/internal/application"
	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
	"github.com/oksasatya/customer-directory/internal/infrastructure/gormstore"
	"github.com/oksasatya/customer-directory/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/customer-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/customer-directory/pkg/helpers"
)

// seed registers a demo customer through the same service the API uses.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	var repo repository.CustomerRepository
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		repo = pginfra.NewCustomerRepository(pool)
	case config.StoreGorm:
		db, err := gormstore.Open(cfg.PostgresDSN(), false, gormstore.PoolOptions{MaxOpenConns: 2})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}
		repo = gormstore.NewCustomerRepository(db)
	default:
		logger.Warn("memory store selected; seeded data is lost on exit")
		repo = memory.NewCustomerRepository()
	}

	svc := application.NewCustomerService(repo, memory.NewBlobStore(), helpers.NewBcryptHasher(cfg.BcryptCost), cfg.GCSBucket, logger)

	email := "demo@example.com"
	password := "password123"
	v, err := svc.Add(ctx, application.AddCustomerInput{
		Name:     "Demo Customer",
		Email:    email,
		Password: password,
		Age:      30,
		Gender:   entity.GenderFemale,
	})
	switch {
	case errors.Is(err, application.ErrDuplicateResource):
		fmt.Printf("customer %s already exists\n", email)
	case err != nil:
		log.Fatalf("failed to seed customer: %v", err)
	default:
		fmt.Printf("seeded customer: id=%d email=%s password=%s\n", v.ID, v.Email, password)
	}
}
