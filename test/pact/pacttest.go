//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "commerce-api"
	ConsumerName = "storefront"

	StateCatalogBaseline = "customer and products exist"
	StateLowStock        = "product P1 has one unit left"
	StateNoCustomer      = "no customer with the requested id"
)

const (
	ExistingCustomerID = "5b0c4a8e-2f4e-4d0b-9a57-1f1f1d6a0c01"
	MissingCustomerID  = "5b0c4a8e-2f4e-4d0b-9a57-1f1f1d6a0c99"
	ProductOneID       = "8d3f5a62-6c1b-4c8e-8f1e-7a0f2b9d4e11"
	ProductTwoID       = "8d3f5a62-6c1b-4c8e-8f1e-7a0f2b9d4e12"

	ProductOneName = "P1"
	ProductTwoName = "P2"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest is the body the storefront sends to place an order.
func ExampleOrderRequest(customerID string, quantity int) map[string]any {
	return map[string]any{
		"customer_id": customerID,
		"products": []map[string]any{
			{"id": ProductOneID, "quantity": quantity},
			{"id": ProductTwoID, "quantity": 1},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
