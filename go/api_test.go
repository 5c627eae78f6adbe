package posserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	posserver "github.com/Apurer/autoparts-pos/go"
	catalogmemory "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/autoparts-pos/internal/domains/catalog/application"
	customermemory "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/memory"
	customerapp "github.com/Apurer/autoparts-pos/internal/domains/customers/application"
	salesmemory "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/memory"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/receipt"
	salesapp "github.com/Apurer/autoparts-pos/internal/domains/sales/application"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
	"github.com/Apurer/autoparts-pos/internal/platform/observability"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	now := func() time.Time { return fixedNow }

	db := memdb.New(memdb.WithClock(now))
	t.Cleanup(db.Close)
	ledger := salesmemory.NewLedger(db)
	catalog := catalogapp.NewService(catalogmemory.NewRepository(db))
	customers := customerapp.NewService(customermemory.NewRepository(db), ledger)
	committer := salesapp.NewCommitter(salesmemory.NewTxManager(db), salesapp.WithCommitClock(now))
	sales := salesapp.NewService(salesapp.NewAggregator(catalog), committer, salesmemory.NewSessionStore(),
		customers, ledger, salesapp.WithClock(now))

	logger := observability.Noop().Logger
	opts := posserver.Options{LowStockThreshold: 5, Logger: logger, Now: now}
	renderer := receipt.NewRenderer("Test Motor Spares", opts.Formatter)
	handlers := posserver.ApiHandleFunctions{
		PartsAPI:     posserver.NewPartsAPI(catalog, opts),
		CustomersAPI: posserver.NewCustomersAPI(customers, opts),
		SessionsAPI:  posserver.NewSessionsAPI(sales, renderer, opts),
		ReportsAPI:   posserver.NewReportsAPI(sales, renderer, opts),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	return posserver.NewRouterWithGinEngine(router, handlers)
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func seedPart(t *testing.T, router http.Handler, name, price, cost string, stock int) int64 {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/v1/parts", map[string]any{
		"name":         name,
		"model":        "Toyota Hilux",
		"sellingPrice": price,
		"costPrice":    cost,
		"stock":        stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return int64(decode(t, rec)["id"].(float64))
}

func openSession(t *testing.T, router http.Handler, customer string) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/v1/customers", map[string]any{"fullName": customer})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = do(t, router, http.MethodPost, "/v1/sessions", map[string]any{"customerName": customer})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}

func TestCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)
	pad := seedPart(t, router, "Brake Pad", "450", "300", 10)
	filter := seedPart(t, router, "Oil Filter", "85.50", "40", 4)
	session := openSession(t, router, "Thabo Nkosi")
	base := "/v1/sessions/" + session

	rec := do(t, router, http.MethodPost, base+"/lines", map[string]any{"partId": pad, "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, router, http.MethodPost, base+"/lines", map[string]any{"partName": "oil filter", "model": "toyota hilux", "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode(t, rec)["cart"].(map[string]any)
	require.Equal(t, "1156.50", cart["grandTotal"])
	require.Equal(t, "R 1,156.50", cart["formattedGrandTotal"])

	rec = do(t, router, http.MethodGet, base+"/cart.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "cart.csv")
	require.Contains(t, rec.Body.String(), "Oil Filter")

	rec = do(t, router, http.MethodPost, base+"/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := decode(t, rec)
	require.Equal(t, "20240315-001", sale["number"])
	require.EqualValues(t, 5, sale["totalQuantity"])

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/v1/parts/%d", filter), nil)
	require.EqualValues(t, 1, decode(t, rec)["stock"])

	rec = do(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	require.Equal(t, "20240315-001", got["lastReceiptNumber"])
	require.Empty(t, got["cart"].(map[string]any)["lines"])

	rec = do(t, router, http.MethodGet, base+"/receipt.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "Receipt_20240315-001.csv")

	rec = do(t, router, http.MethodGet, base+"/receipt.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestAddLineRejectsShortStock(t *testing.T) {
	router := newTestRouter(t)
	pad := seedPart(t, router, "Brake Pad", "450", "300", 5)
	base := "/v1/sessions/" + openSession(t, router, "Lerato Dlamini")

	rec := do(t, router, http.MethodPost, base+"/lines", map[string]any{"partId": pad, "quantity": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, router, http.MethodPost, base+"/lines", map[string]any{"partId": pad, "quantity": 2})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	problem := decode(t, rec)
	require.Equal(t, "/problems/insufficient-stock", problem["type"])
	ext := problem["extensions"].(map[string]any)
	require.EqualValues(t, 6, ext["requested"])
	require.EqualValues(t, 5, ext["available"])

	rec = do(t, router, http.MethodPost, base+"/lines", map[string]any{"partId": pad, "quantity": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "/problems/validation-error", decode(t, rec)["type"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	router := newTestRouter(t)
	base := "/v1/sessions/" + openSession(t, router, "Sipho Mokoena")

	rec := do(t, router, http.MethodPost, base+"/checkout", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "/problems/empty-cart", decode(t, rec)["type"])

	rec = do(t, router, http.MethodGet, base+"/receipt.pdf", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLookupErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/v1/sessions/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/sessions/3f2c8a4e-5d7b-4c1a-9e6f-0a1b2c3d4e5f", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/v1/sessions", map[string]any{"customerName": "Nobody"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPartsEndpoints(t *testing.T) {
	router := newTestRouter(t)
	pad := seedPart(t, router, "Brake Pad", "450", "300", 2)
	seedPart(t, router, "Spark Plug", "65", "30", 40)

	rec := do(t, router, http.MethodPost, "/v1/parts", map[string]any{
		"name": "Brake Pad", "model": "Toyota Hilux", "sellingPrice": "1", "costPrice": "1", "stock": 1,
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/parts/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, router, http.MethodGet, "/v1/parts/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/parts/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var low []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &low))
	require.Len(t, low, 1)
	require.Equal(t, true, low[0]["lowStock"])

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/v1/parts/%d/restock", pad), map[string]any{"quantity": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 10, decode(t, rec)["stock"])

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/v1/parts/%d/restock", pad), map[string]any{"quantity": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/v1/parts/%d/prices", pad), map[string]any{"sellingPrice": "499.99", "costPrice": "310"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "R 499.99", decode(t, rec)["formattedPrice"])

	rec = do(t, router, http.MethodGet, "/v1/parts?search=spark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found, 1)
}

func TestDeleteCustomerWithSales(t *testing.T) {
	router := newTestRouter(t)
	pad := seedPart(t, router, "Brake Pad", "450", "300", 5)
	base := "/v1/sessions/" + openSession(t, router, "Naledi Khumalo")
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, base+"/lines", map[string]any{"partId": pad, "quantity": 1}).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, base+"/checkout", nil).Code)

	rec := do(t, router, http.MethodGet, "/v1/customers", nil)
	var customers []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	id := int64(customers[0]["id"].(float64))

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/v1/customers/%d", id), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "/problems/referential-conflict", decode(t, rec)["type"])

	rec = do(t, router, http.MethodPost, "/v1/customers", map[string]any{"fullName": "Temp Buyer"})
	tempID := int64(decode(t, rec)["id"].(float64))
	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/v1/customers/%d", tempID), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProfitReport(t *testing.T) {
	router := newTestRouter(t)
	pad := seedPart(t, router, "Brake Pad", "450", "300", 5)
	base := "/v1/sessions/" + openSession(t, router, "Ayanda Zulu")
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, base+"/lines", map[string]any{"partId": pad, "quantity": 2}).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, base+"/checkout", nil).Code)

	rec := do(t, router, http.MethodGet, "/v1/reports/profit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode(t, rec)
	require.Equal(t, "2024-03-01", report["from"])
	require.Equal(t, "2024-04-01", report["to"])
	require.Equal(t, "900.00", report["totalRevenue"])
	require.Equal(t, "300.00", report["totalProfit"])

	rec = do(t, router, http.MethodGet, "/v1/reports/profit?from=2024-04-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode(t, rec)["rows"])

	rec = do(t, router, http.MethodGet, "/v1/reports/profit?from=2024-03-10&to=2024-03-01", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, router, http.MethodGet, "/v1/reports/profit?from=March", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/reports/profit.csv?from=2024-03-01&to=2024-04-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), receipt.ReportFileName)
	require.Contains(t, rec.Body.String(), "Brake Pad")
}
