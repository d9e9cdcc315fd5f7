package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/internal/domain/repository"
)

// customerModel maps the customer table for GORM.
type customerModel struct {
	ID              int64   `gorm:"primaryKey"`
	Name            string  `gorm:"not null"`
	Email           string  `gorm:"not null;uniqueIndex:customer_email_unique"`
	Password        string  `gorm:"not null"`
	Age             int     `gorm:"not null"`
	Gender          string  `gorm:"not null"`
	ProfileImageKey *string `gorm:"uniqueIndex:profile_image_key_unique"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (customerModel) TableName() string { return "customer" }

func fromEntity(c *entity.Customer) customerModel {
	return customerModel{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Password:        c.Password,
		Age:             c.Age,
		Gender:          string(c.Gender),
		ProfileImageKey: c.ProfileImageKey,
	}
}

func (m customerModel) toEntity() *entity.Customer {
	return &entity.Customer{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Password:        m.Password,
		Age:             m.Age,
		Gender:          entity.Gender(m.Gender),
		ProfileImageKey: m.ProfileImageKey,
	}
}

// CustomerRepository implements repository.CustomerRepository using GORM.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

func (r *CustomerRepository) FindAll(ctx context.Context, limit int) ([]entity.Customer, error) {
	var rows []customerModel
	if err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(rows))
	for _, m := range rows {
		out = append(out, *m.toEntity())
	}
	return out, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var m customerModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return m.toEntity(), nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var m customerModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.toEntity(), nil
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customerModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&customerModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerRepository) Insert(ctx context.Context, c *entity.Customer) error {
	m := fromEntity(c)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	c.ID = m.ID
	return nil
}

// Update writes every column, including a nil profile image key.
// GORM stamps updated_at itself.
func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	res := r.db.WithContext(ctx).Model(&customerModel{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":              c.Name,
		"email":             c.Email,
		"password":          c.Password,
		"age":               c.Age,
		"gender":            string(c.Gender),
		"profile_image_key": c.ProfileImageKey,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&customerModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)
