package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/fanout"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog entries in PostgreSQL using GORM.
type Repository struct {
	db          *gorm.DB
	concurrency int
}

// Option configures the repository.
type Option func(*Repository)

// WithConcurrency bounds the number of stock updates issued in parallel outside a transaction.
func WithConcurrency(n int) Option {
	return func(r *Repository) {
		r.concurrency = n
	}
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, concurrency: fanout.DefaultLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type productRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int64           `gorm:"column:quantity;check:quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Create inserts a new catalog entry and assigns its identifier.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
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

// FindByID fetches a product by identifier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByName fetches a product by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.first(ctx, "name = ?", name)
}

// FindAllByID returns the products that exist among ids ordered by creation. Inside a
// transaction the rows are locked until commit so stock cannot move underneath the caller.
func (r *Repository) FindAllByID(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}
	keys := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	query := r.conn(ctx).Where("id = ANY(?::uuid[])", keys).Order("created_at, id")
	if platformpostgres.InTransaction(ctx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// UpdatePrice changes the unit price of an existing product.
func (r *Repository) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(price); err != nil {
		return nil, err
	}
	var records []productRecord
	result := r.conn(ctx).Model(&records).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]any{"price": price, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(records) == 0 {
		return nil, ports.ErrNotFound
	}
	return records[0].toDomain(), nil
}

// UpdateQuantity applies each adjustment as a conditional decrement. Outside a transaction
// the statements run concurrently on the pool; inside one they share the transaction
// connection and run one at a time.
func (r *Repository) UpdateQuantity(ctx context.Context, adjustments []domain.StockAdjustment) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	for _, adj := range adjustments {
		if err := adj.Validate(); err != nil {
			return nil, err
		}
	}
	limit := r.concurrency
	if platformpostgres.InTransaction(ctx) {
		limit = 1
	}
	updated, err := fanout.Map(ctx, limit, adjustments, r.decrement)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0, len(updated))
	for _, product := range updated {
		if product != nil {
			result = append(result, product)
		}
	}
	return result, nil
}

// decrement subtracts stock in one statement so concurrent orders cannot oversell.
// A missing product yields (nil, nil).
func (r *Repository) decrement(ctx context.Context, adj domain.StockAdjustment) (*domain.Product, error) {
	var records []productRecord
	result := r.conn(ctx).Model(&records).
		Clauses(clause.Returning{}).
		Where("id = ? AND quantity >= ?", adj.ProductID, adj.Quantity).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", adj.Quantity),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 && len(records) > 0 {
		return records[0].toDomain(), nil
	}
	current, err := r.FindByID(ctx, adj.ProductID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: product %s has %d, requested %d", ports.ErrInsufficientStock, current.ID, current.Quantity, adj.Quantity)
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
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
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		Price:     r.Price,
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
