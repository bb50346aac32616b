package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/customers/ports"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type customerRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Create inserts a new customer and assigns its identifier.
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	record := toRecord(customer)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.conn(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrConflict
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByID fetches a customer by identifier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail fetches a customer by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.conn(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.Conn(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	return customerRecord{
		ID:    customer.ID,
		Name:  customer.Name,
		Email: customer.Email,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
