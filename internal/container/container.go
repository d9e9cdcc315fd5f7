package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/customer-directory/config"
	"github.com/oksasatya/customer-directory/internal/interface/metrics"
	"github.com/oksasatya/customer-directory/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules pull their dependencies from here; nil means "not configured".

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	gormDB      *gorm.DB
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
	httpMetrics *metrics.HTTPMetrics
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetGormDB(db *gorm.DB)        { gormDB = db }
func GetGormDB() *gorm.DB          { return gormDB }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetMetrics(m *metrics.HTTPMetrics)       { httpMetrics = m }
func GetMetrics() *metrics.HTTPMetrics        { return httpMetrics }

// Reset clears every singleton. Tests use it between cases.
func Reset() {
	cfg, logger, pgPool, gormDB, redisClient, gcsClient = nil, nil, nil, nil, nil, nil
	jwtManager, rabbitPub, esClient, httpMetrics = nil, nil, nil, nil
}
