package application

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
)

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, limit int) ([]entity.Customer, error) {
	args := m.Called(ctx, limit)
	out, _ := args.Get(0).([]entity.Customer)
	return out, args.Error(1)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*entity.Customer)
	return c, args.Error(1)
}

func (m *mockCustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomerRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomerRepo) Insert(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCustomerRepo) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, bucket, objectPath string, data []byte) error {
	return m.Called(ctx, bucket, objectPath, data).Error(0)
}

func (m *mockBlobStore) Get(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	args := m.Called(ctx, bucket, objectPath)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) IndexCustomer(ctx context.Context, v entity.CustomerView) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockIndexer) RemoveCustomer(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndexer) SearchCustomers(ctx context.Context, q string, size int) ([]entity.CustomerView, error) {
	args := m.Called(ctx, q, size)
	out, _ := args.Get(0).([]entity.CustomerView)
	return out, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) CustomerRegistered(ctx context.Context, v entity.CustomerView) error {
	return m.Called(ctx, v).Error(0)
}

// plainHasher stores "hashed:<plain>" so tests can see hashing happened.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Verify(plain, hash string) bool { return hash == "hashed:"+plain }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("bcrypt: password length exceeds 72 bytes") }

func (failingHasher) Verify(string, string) bool { return false }
