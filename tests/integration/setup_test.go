package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"carteira/internal/fetcher"
	"carteira/internal/handlers"
	"carteira/internal/logger"
	"carteira/internal/marketdata"
	"carteira/internal/middleware"
	"carteira/internal/models"
	"carteira/internal/refresh"
	"carteira/internal/selection"
	"carteira/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB           *gorm.DB
	Router       *gin.Engine
	Orchestrator *refresh.Orchestrator
	Cache        *marketdata.Cache
	Provider     *httptest.Server
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.SelectedSymbol{},
		&models.CustomIndexRow{},
		&models.ManualAssetRow{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupQuoteProvider starts a fake chart API that resolves every symbol
// with a deterministic price derived from the symbol length.
func setupQuoteProvider(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		symbol := parts[len(parts)-1]
		price := 10.0 + float64(len(symbol))
		prev := price - 1

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"chart":{"result":[{"meta":{
			"symbol":%q,
			"shortName":%q,
			"regularMarketPrice":%.2f,
			"chartPreviousClose":%.2f,
			"regularMarketVolume":1000,
			"currency":"BRL"
		}}],"error":null}}`, symbol, "Name "+symbol, price, prev)
	}))
	t.Cleanup(server.Close)
	return server
}

// setupApp creates a full application stack backed by an isolated
// in-memory SQLite and a fake quote provider.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	log := logger.Get()
	db := setupIsolatedDB(t)
	provider := setupQuoteProvider(t)

	// Selection store backed by the real GORM repository
	repo := selection.NewRepository(db)
	initial, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("failed to load selection state: %v", err)
	}
	store := selection.NewStore(initial, repo, log)

	// In-process aggregation against the fake provider
	quoteFetcher := fetcher.New(provider.Client(), provider.URL, 2*time.Second, log)
	service := marketdata.NewService(quoteFetcher, log)
	cache := marketdata.NewCache()
	orchestrator := refresh.New(store, service, cache, time.Hour, 5*time.Second, log)
	t.Cleanup(orchestrator.Deactivate)

	// Handlers
	selectionHandler := handlers.NewSelectionHandler(store)
	marketHandler := handlers.NewMarketHandler(orchestrator, cache, service)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	selections := v1.Group("/selections")
	selections.GET("", selectionHandler.GetState)
	selections.PUT("/:category", selectionHandler.SetCategory)
	selections.POST("/:category/symbols", selectionHandler.AddSymbol)
	selections.DELETE("/:category/symbols/:symbol", selectionHandler.RemoveSymbol)
	selections.POST("/indices", selectionHandler.AddCustomIndex)
	selections.PUT("/indices/:symbol", selectionHandler.UpdateCustomIndex)
	selections.DELETE("/indices/:symbol", selectionHandler.RemoveCustomIndex)
	selections.POST("/manual-assets", selectionHandler.AddManualAsset)
	selections.DELETE("/manual-assets/:symbol", selectionHandler.RemoveManualAsset)

	market := v1.Group("/market")
	market.GET("/snapshot", marketHandler.GetSnapshot)
	market.POST("/refresh", marketHandler.Refresh)
	market.POST("/activate", marketHandler.Activate)
	market.POST("/deactivate", marketHandler.Deactivate)
	market.POST("/aggregate", middleware.AggregateAuth(""), marketHandler.Aggregate)

	return &testApp{
		DB:           db,
		Router:       router,
		Orchestrator: orchestrator,
		Cache:        cache,
		Provider:     provider,
	}
}

// newRepository opens a second repository over the app's database,
// simulating a later session.
func newRepository(app *testApp) selection.Repository {
	return selection.NewRepository(app.DB)
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// waitForSnapshot polls the cache until a snapshot lands or the deadline
// passes.
func (app *testApp) waitForSnapshot(t *testing.T) *models.MarketSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if snap := app.Cache.Snapshot(); snap != nil {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for a market snapshot")
	return nil
}

// waitUntilIdle polls until the orchestrator reports loading finished.
func (app *testApp) waitUntilIdle(t *testing.T) refresh.Status {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if status := app.Orchestrator.Status(); !status.Loading {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for the refresh cycle to finish")
	return refresh.Status{}
}
