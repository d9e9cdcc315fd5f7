package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
)

const uniqueViolation = "23505"

const customerColumns = `id, name, email, password, age, gender, profile_image_key`

// Querier is the part of *pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CustomerRepository is the hand-written SQL implementation on top of pgx.
type CustomerRepository struct {
	db Querier
}

func NewCustomerRepository(db Querier) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	c := &entity.Customer{}
	var gender string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Password, &c.Age, &gender, &c.ProfileImageKey); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c.Gender = entity.Gender(gender)
	return c, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

func (r *CustomerRepository) FindAll(ctx context.Context, limit int) ([]entity.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customer
		ORDER BY id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return scanCustomer(r.db.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customer
		WHERE id = $1
	`, id))
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return scanCustomer(r.db.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customer
		WHERE email = $1
	`, email))
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customer WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customer WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *CustomerRepository) Insert(ctx context.Context, c *entity.Customer) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO customer (name, email, password, age, gender, profile_image_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.Name, c.Email, c.Password, c.Age, string(c.Gender), c.ProfileImageKey)

	return translate(row.Scan(&c.ID))
}

func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	res, err := r.db.Exec(ctx, `
		UPDATE customer
		SET name = $1, email = $2, password = $3, age = $4, gender = $5, profile_image_key = $6, updated_at = now()
		WHERE id = $7
	`, c.Name, c.Email, c.Password, c.Age, string(c.Gender), c.ProfileImageKey, c.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM customer WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
