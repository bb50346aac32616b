package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Tables are created in dependency order.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&productRecord{},
		&orderRecord{},
		&orderLineRecord{},
	)
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Product schema mirrors the catalog Postgres adapter. Stock can never go negative.
type productRecord struct {
	ID        uuid.UUID       `gorm:"primaryKey;column:id;type:uuid"`
	Name      string          `gorm:"column:name;uniqueIndex"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int64           `gorm:"column:quantity;check:quantity >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         uuid.UUID         `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;index"`
	Lines      []orderLineRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;index"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema keeps the unit price captured when the order was placed.
type orderLineRecord struct {
	OrderID   uuid.UUID       `gorm:"primaryKey;column:order_id;type:uuid"`
	Position  int             `gorm:"primaryKey;column:position;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;index"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity  int64           `gorm:"column:quantity"`
}

func (orderLineRecord) TableName() string { return "order_lines" }
