package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	ordersworkflows "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/workflows"
)

type closingClient struct {
	client.Client
	closed bool
}

func (c *closingClient) Close() { c.closed = true }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildServices_WithoutDSNUsesMemory(t *testing.T) {
	services, cleanup := BuildServices(context.Background(), Config{StockUpdateConcurrency: 4, OrderTransactions: true}, nil)
	defer cleanup()

	require.Equal(t, StorageMemory, services.Storage)
}

func TestSelectOrderWorkflows_MemoryStorageRunsInline(t *testing.T) {
	services, cleanup := BuildServices(context.Background(), Config{StockUpdateConcurrency: 4, OrderTransactions: true}, nil)
	defer cleanup()
	dialed := false

	orchestrator, closeFn := SelectOrderWorkflows(services, func() (client.Client, error) {
		dialed = true
		return &closingClient{}, nil
	}, discardLogger())
	defer closeFn()

	require.IsType(t, &ordersworkflows.InlineOrderWorkflows{}, orchestrator)
	require.False(t, dialed)
}

func TestSelectOrderWorkflows_PostgresStorageUsesTemporal(t *testing.T) {
	services := &Services{Storage: StoragePostgres}
	temporalClient := &closingClient{}

	orchestrator, closeFn := SelectOrderWorkflows(services, func() (client.Client, error) {
		return temporalClient, nil
	}, discardLogger())

	require.IsType(t, &ordersworkflows.TemporalOrderWorkflows{}, orchestrator)
	closeFn()
	require.True(t, temporalClient.closed)
}

func TestSelectOrderWorkflows_DialFailureFallsBackInline(t *testing.T) {
	services := &Services{Storage: StoragePostgres}

	orchestrator, closeFn := SelectOrderWorkflows(services, func() (client.Client, error) {
		return nil, errors.New("connection refused")
	}, discardLogger())
	defer closeFn()

	require.IsType(t, &ordersworkflows.InlineOrderWorkflows{}, orchestrator)
}
