package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
)

var (
	// ErrNotFound is returned by lookups that match no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique constraint (email or profile image key).
	ErrDuplicate = errors.New("duplicate key")
)

// CustomerRepository defines the interface for customer persistence.
// Update replaces the whole record; callers compute the merged customer first.
type CustomerRepository interface {
	FindAll(ctx context.Context, limit int) ([]entity.Customer, error)
	FindByID(ctx context.Context, id int64) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	DeleteByID(ctx context.Context, id int64) error
}
