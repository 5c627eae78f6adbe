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
	ProviderName = "autoparts-api"
	ConsumerName = "pos-terminal"

	StateCatalogBaseline = "catalog baseline"
	StatePartExists      = "part with id 101 exists"
	StatePartMissing     = "no part with id 404"
	StateCustomerExists  = "customer Thandi Mthembu is registered"
)

const (
	ExistingPartID int64 = 101
	MissingPartID  int64 = 404

	ExampleCustomerName = "Thandi Mthembu"
)

const (
	ExamplePartName  = "Brake Pad"
	ExamplePartModel = "VW Polo"
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

// PactFile returns the canonical pact file path for the till consumer.
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

// ExampleNewPartPayload provides stable test data for catalog interactions.
func ExampleNewPartPayload() map[string]any {
	return map[string]any{
		"name":         ExamplePartName,
		"model":        ExamplePartModel,
		"sellingPrice": "120.00",
		"costPrice":    "80.00",
		"stock":        5,
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
