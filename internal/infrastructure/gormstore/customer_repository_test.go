package gormstore

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
)

var customerCols = []string{"id", "name", "email", "password", "age", "gender", "profile_image_key", "created_at", "updated_at"}

func newRepo(t *testing.T) (*CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := FromConn(conn, false)
	require.NoError(t, err)
	return NewCustomerRepository(db), mock
}

func TestFindByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customer" WHERE "customer"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows(customerCols).
			AddRow(int64(7), "Alex", "alex@example.com", "hash", 30, "MALE", nil, now, now))

	c, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, entity.GenderMale, c.Gender)
	assert.Nil(t, c.ProfileImageKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customer" WHERE "customer"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows(customerCols))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInsertSetsID(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "customer"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	c := &entity.Customer{Name: "Alex", Email: "alex@example.com", Password: "hash", Age: 30, Gender: entity.GenderMale}
	require.NoError(t, repo.Insert(context.Background(), c))
	assert.Equal(t, int64(42), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertDuplicateEmail(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "customer"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customer_email_unique"})

	c := &entity.Customer{Name: "Alex", Email: "alex@example.com", Password: "hash", Age: 30, Gender: entity.GenderMale}
	err := repo.Insert(context.Background(), c)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestExistsByEmail(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "customer" WHERE email = $1`)).
		WithArgs("alex@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistsByEmail(context.Background(), "alex@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateMissingRow(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customer" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.Customer{ID: 5, Name: "x", Email: "x@example.com", Gender: entity.GenderFemale})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "customer" WHERE "customer"."id" = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByID(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
