package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID         uuid.UUID         `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;index"`
	Lines      []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;index"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderLineRecord struct {
	OrderID   uuid.UUID       `gorm:"primaryKey;column:order_id;type:uuid"`
	Position  int             `gorm:"primaryKey;column:position;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;index"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int64           `gorm:"column:quantity"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Create inserts the order and its lines in one statement batch. GORM wraps association
// writes in a transaction, or a savepoint when the context already carries one.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	for i := range record.Lines {
		record.Lines[i].OrderID = record.ID
	}
	if err := r.conn(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByID fetches an order with its lines in their original order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.conn(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&record, "id = ?", id).Error
	if err != nil {
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
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Lines:      make([]orderLineRecord, 0, len(order.Lines)),
	}
	for i, line := range order.Lines {
		rec.Lines = append(rec.Lines, orderLineRecord{
			OrderID:   order.ID,
			Position:  i + 1,
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Lines:      make([]domain.Line, 0, len(r.Lines)),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return order
}
