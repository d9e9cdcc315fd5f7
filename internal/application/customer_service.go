package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/internal/domain/auth"
	"github.com/oksasatya/customer-directory/internal/domain/entity"
	repo "github.com/oksasatya/customer-directory/internal/domain/repository"
)

// MaxListSize caps ListAll; there is no pagination.
const MaxListSize = 1000

// CustomerIndexer mirrors customer views into a search index.
type CustomerIndexer interface {
	IndexCustomer(ctx context.Context, v entity.CustomerView) error
	RemoveCustomer(ctx context.Context, id int64) error
	SearchCustomers(ctx context.Context, q string, size int) ([]entity.CustomerView, error)
}

// RegistrationNotifier is told about every newly registered customer.
type RegistrationNotifier interface {
	CustomerRegistered(ctx context.Context, v entity.CustomerView) error
}

// CustomerService owns the customer invariants. It is the only caller of the
// repository's write methods.
type CustomerService struct {
	Repo   repo.CustomerRepository
	Blobs  repo.BlobStore
	Hasher auth.PasswordHasher
	Bucket string
	Logger *logrus.Logger

	// Optional; nil disables search indexing and welcome notifications.
	Index    CustomerIndexer
	Notifier RegistrationNotifier

	newImageKey func() string
}

func NewCustomerService(repo repo.CustomerRepository, blobs repo.BlobStore, hasher auth.PasswordHasher, bucket string, logger *logrus.Logger) *CustomerService {
	return &CustomerService{
		Repo:        repo,
		Blobs:       blobs,
		Hasher:      hasher,
		Bucket:      bucket,
		Logger:      logger,
		newImageKey: uuid.NewString,
	}
}

type AddCustomerInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   entity.Gender
}

// UpdateCustomerInput carries optional fields; nil means "leave unchanged".
// Fields cannot be cleared.
type UpdateCustomerInput struct {
	Name  *string
	Email *string
	Age   *int
}

// ProfileImagePath is the blob path of a customer's image.
func ProfileImagePath(customerID int64, key string) string {
	return fmt.Sprintf("profile-images/%d/%s", customerID, key)
}

func (s *CustomerService) ListAll(ctx context.Context) ([]entity.CustomerView, error) {
	customers, err := s.Repo.FindAll(ctx, MaxListSize)
	if err != nil {
		return nil, s.storageFailure(err, "list customers")
	}
	out := make([]entity.CustomerView, 0, len(customers))
	for i := range customers {
		out = append(out, customers[i].ToView())
	}
	return out, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*entity.CustomerView, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v := c.ToView()
	return &v, nil
}

// Add registers a customer. The password is hashed before anything is written.
func (s *CustomerService) Add(ctx context.Context, in AddCustomerInput) (*entity.CustomerView, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationf("name must not be empty")
	}
	if !in.Gender.Valid() {
		return nil, validationf("gender must be one of MALE, FEMALE")
	}
	taken, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, s.storageFailure(err, "check email")
	}
	if taken {
		return nil, duplicatef("email already taken")
	}
	if len(in.Password) > entity.MaxPasswordBytes {
		return nil, validationf("password must be at most %d bytes", entity.MaxPasswordBytes)
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, validationf("password cannot be hashed: %v", err)
	}
	c := &entity.Customer{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Age:      in.Age,
		Gender:   in.Gender,
	}
	if err := s.Repo.Insert(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, duplicatef("email already taken")
		}
		return nil, s.storageFailure(err, "insert customer")
	}

	v := c.ToView()
	s.index(ctx, v)
	if s.Notifier != nil {
		if nErr := s.Notifier.CustomerRegistered(ctx, v); nErr != nil && s.Logger != nil {
			s.Logger.WithError(nErr).WithField("customer_id", c.ID).Warn("registration notification failed")
		}
	}
	return &v, nil
}

func (s *CustomerService) DeleteByID(ctx context.Context, id int64) error {
	exists, err := s.Repo.ExistsByID(ctx, id)
	if err != nil {
		return s.storageFailure(err, "check customer")
	}
	if !exists {
		return notFoundf("customer with id [%d] not found", id)
	}
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundf("customer with id [%d] not found", id)
		}
		return s.storageFailure(err, "delete customer")
	}
	if s.Index != nil {
		if iErr := s.Index.RemoveCustomer(ctx, id); iErr != nil && s.Logger != nil {
			s.Logger.WithError(iErr).WithField("customer_id", id).Warn("search index removal failed")
		}
	}
	return nil
}

// UpdateByID applies the supplied fields that differ from the stored ones and
// writes the merged record once. A request that changes nothing is rejected
// without touching the store.
func (s *CustomerService) UpdateByID(ctx context.Context, id int64, in UpdateCustomerInput) error {
	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if in.Name != nil && *in.Name != c.Name {
		if strings.TrimSpace(*in.Name) == "" {
			return validationf("name must not be empty")
		}
		c.Name = *in.Name
		changed = true
	}
	if in.Age != nil && *in.Age != c.Age {
		c.Age = *in.Age
		changed = true
	}
	if in.Email != nil && *in.Email != c.Email {
		taken, err := s.Repo.ExistsByEmail(ctx, *in.Email)
		if err != nil {
			return s.storageFailure(err, "check email")
		}
		if taken {
			return duplicatef("email already taken")
		}
		c.Email = *in.Email
		changed = true
	}
	if !changed {
		return validationf("no data changes found")
	}

	if err := s.save(ctx, c); err != nil {
		return err
	}
	s.index(ctx, c.ToView())
	return nil
}

// SetProfileImage stores the bytes under a fresh key and then points the
// customer at it. The previous blob, if any, is left behind.
func (s *CustomerService) SetProfileImage(ctx context.Context, customerID int64, data []byte) error {
	if _, err := s.load(ctx, customerID); err != nil {
		return err
	}
	if len(data) == 0 {
		return validationf("profile image is empty")
	}

	key := s.newImageKey()
	if err := s.Blobs.Put(ctx, s.Bucket, ProfileImagePath(customerID, key), data); err != nil {
		return s.storageFailure(err, "upload profile image")
	}
	// re-read so edits made while the upload ran are not overwritten
	c, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}
	c.ProfileImageKey = &key
	if err := s.save(ctx, c); err != nil {
		return err
	}
	s.index(ctx, c.ToView())
	return nil
}

func (s *CustomerService) GetProfileImage(ctx context.Context, customerID int64) ([]byte, error) {
	c, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !c.HasProfileImage() {
		return nil, notFoundf("customer with id [%d] profile image not found", customerID)
	}
	data, err := s.Blobs.Get(ctx, s.Bucket, ProfileImagePath(customerID, *c.ProfileImageKey))
	if err != nil {
		return nil, s.storageFailure(err, "download profile image")
	}
	return data, nil
}

// Search looks customers up by name or email. Without an index it finds nothing.
func (s *CustomerService) Search(ctx context.Context, q string, size int) ([]entity.CustomerView, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.CustomerView{}, nil
	}
	res, err := s.Index.SearchCustomers(ctx, q, size)
	if err != nil {
		return nil, s.storageFailure(err, "search customers")
	}
	return res, nil
}

func (s *CustomerService) load(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("customer with id [%d] not found", id)
		}
		return nil, s.storageFailure(err, "load customer")
	}
	return c, nil
}

func (s *CustomerService) save(ctx context.Context, c *entity.Customer) error {
	err := s.Repo.Update(ctx, c)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return notFoundf("customer with id [%d] not found", c.ID)
	case errors.Is(err, repo.ErrDuplicate):
		return duplicatef("email already taken")
	default:
		return s.storageFailure(err, "update customer")
	}
}

func (s *CustomerService) index(ctx context.Context, v entity.CustomerView) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexCustomer(ctx, v); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("customer_id", v.ID).Warn("search index update failed")
	}
}

func (s *CustomerService) storageFailure(err error, op string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("op", op).Error("storage failure")
	}
	return storageError(err)
}
