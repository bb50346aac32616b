package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ ports.Transactor = (*LockTransactor)(nil)

// LockTransactor serializes units of work in a single process. It gives isolation
// between concurrent orders but cannot roll back writes already made.
type LockTransactor struct {
	mu sync.Mutex
}

func NewLockTransactor() *LockTransactor {
	return &LockTransactor{}
}

func (t *LockTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
