package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
)

// CustomerRepository keeps customers in process memory. Records are copied on
// the way in and out so callers never share state with the store.
type CustomerRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]entity.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{byID: make(map[int64]entity.Customer)}
}

func clone(c entity.Customer) entity.Customer {
	if c.ProfileImageKey != nil {
		k := *c.ProfileImageKey
		c.ProfileImageKey = &k
	}
	return c
}

func (r *CustomerRepository) FindAll(_ context.Context, limit int) ([]entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *CustomerRepository) FindByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := clone(c)
	return &cp, nil
}

func (r *CustomerRepository) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.Email == email {
			cp := clone(c)
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *CustomerRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

// conflicts reports whether another record already holds c's email or image key.
// Caller must hold the lock.
func (r *CustomerRepository) conflicts(c *entity.Customer) bool {
	for id, other := range r.byID {
		if id == c.ID {
			continue
		}
		if other.Email == c.Email {
			return true
		}
		if c.ProfileImageKey != nil && other.ProfileImageKey != nil && *other.ProfileImageKey == *c.ProfileImageKey {
			return true
		}
	}
	return false
}

func (r *CustomerRepository) Insert(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = 0
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	r.nextID++
	c.ID = r.nextID
	r.byID[c.ID] = clone(*c)
	return nil
}

func (r *CustomerRepository) Update(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.conflicts(c) {
		return repository.ErrDuplicate
	}
	r.byID[c.ID] = clone(*c)
	return nil
}

func (r *CustomerRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
