//go:build pact
// +build pact

package provider_test

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/autoparts-pos/test/pact"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/autoparts-pos/internal/app/api"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
	"github.com/Apurer/autoparts-pos/internal/platform/observability"
)

func TestAutopartsProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StatePartExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedPart(t, pacttest.ExistingPartID)
			}
			return nil, nil
		},
		pacttest.StatePartMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCustomerExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCustomer(t, pacttest.ExampleCustomerName)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	db     *memdb.DB
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	db := memdb.New()
	t.Cleanup(db.Close)
	cfg := api.Config{
		DatabaseDriver:    api.DriverMemory,
		SessionTTL:        24 * time.Hour,
		LowStockThreshold: 10,
		CurrencySymbol:    "R",
	}
	instruments := observability.Noop()
	services := api.NewServices(cfg, api.MemoryStores(db), nil, instruments)

	server := httptest.NewServer(api.NewRouter(cfg, services, instruments.Logger))
	t.Cleanup(server.Close)

	return &contractProviderApp{
		db:     db,
		server: server,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	require.NoError(t, a.db.Update(func(tables *memdb.Tables) error {
		tables.Parts = map[int64]memdb.PartRow{}
		tables.Customers = map[int64]memdb.CustomerRow{}
		tables.Sales = nil
		tables.ReceiptSeq = map[string]int{}
		return nil
	}))
}

func (a *contractProviderApp) seedPart(t testing.TB, id int64) {
	t.Helper()
	require.NoError(t, a.db.Update(func(tables *memdb.Tables) error {
		now := a.db.Now()
		tables.Parts[id] = memdb.PartRow{
			ID:        id,
			Name:      pacttest.ExamplePartName,
			Model:     pacttest.ExamplePartModel,
			Price:     decimal.RequireFromString("120.00"),
			Cost:      decimal.RequireFromString("80.00"),
			Stock:     5,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	}))
}

func (a *contractProviderApp) seedCustomer(t testing.TB, name string) {
	t.Helper()
	require.NoError(t, a.db.Update(func(tables *memdb.Tables) error {
		id := tables.NextCustomerID()
		now := a.db.Now()
		tables.Customers[id] = memdb.CustomerRow{ID: id, FullName: name, CreatedAt: now, UpdatedAt: now}
		return nil
	}))
}
