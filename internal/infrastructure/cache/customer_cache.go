package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
	"github.com/oksasatya/customer-directory/pkg/helpers"
)

const DefaultTTL = 5 * time.Minute

// CustomerRepository is a read-through Redis cache in front of another
// repository. Only lookups by id are cached; every write evicts the entry.
// Redis failures are logged and never fail the call.
//
// Entries are full records, password hash included: updates write the whole
// record back, so a cache hit must carry the hash or it would be blanked.
// Keep the Redis instance private to this service.
type CustomerRepository struct {
	next   repository.CustomerRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCustomerRepository(next repository.CustomerRepository, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *CustomerRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CustomerRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func customerKey(id int64) string {
	return fmt.Sprintf("customer:id:%d", id)
}

func (r *CustomerRepository) evict(ctx context.Context, id int64) {
	if err := helpers.RedisDel(ctx, r.rdb, customerKey(id)); err != nil {
		r.logger.WithError(err).WithField("customer_id", id).Warn("cache evict failed")
	}
}

func (r *CustomerRepository) FindAll(ctx context.Context, limit int) ([]entity.Customer, error) {
	return r.next.FindAll(ctx, limit)
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var cached entity.Customer
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, customerKey(id), &cached)
	if err != nil {
		r.logger.WithError(err).WithField("customer_id", id).Warn("cache read failed")
	}
	if hit {
		return &cached, nil
	}

	c, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, r.rdb, customerKey(id), c, r.ttl); err != nil {
		r.logger.WithError(err).WithField("customer_id", id).Warn("cache write failed")
	}
	return c, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return r.next.FindByEmail(ctx, email)
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.next.ExistsByEmail(ctx, email)
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.next.ExistsByID(ctx, id)
}

func (r *CustomerRepository) Insert(ctx context.Context, c *entity.Customer) error {
	return r.next.Insert(ctx, c)
}

func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	err := r.next.Update(ctx, c)
	r.evict(ctx, c.ID)
	return err
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id int64) error {
	err := r.next.DeleteByID(ctx, id)
	r.evict(ctx, id)
	return err
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
