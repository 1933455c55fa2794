package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"carteira/internal/logger"
	"carteira/internal/models"
	"carteira/internal/selection"
	"carteira/internal/validator"
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func newTestStore() *selection.Store {
	return selection.NewStore(models.NewSelectionState(), nil, logger.Get())
}

func setupSelectionRouter(handler *SelectionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/selections", handler.GetState)
	r.PUT("/selections/:category", handler.SetCategory)
	r.POST("/selections/:category/symbols", handler.AddSymbol)
	r.DELETE("/selections/:category/symbols/:symbol", handler.RemoveSymbol)
	r.POST("/selections/indices", handler.AddCustomIndex)
	r.PUT("/selections/indices/:symbol", handler.UpdateCustomIndex)
	r.DELETE("/selections/indices/:symbol", handler.RemoveCustomIndex)
	r.POST("/selections/manual-assets", handler.AddManualAsset)
	r.DELETE("/selections/manual-assets/:symbol", handler.RemoveManualAsset)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func selectionField(t *testing.T, rec *httptest.ResponseRecorder, field string) interface{} {
	t.Helper()
	result := parseJSON(t, rec)
	sel, ok := result["selection"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no selection object: %s", rec.Body.String())
	}
	return sel[field]
}

func TestSelectionHandler_GetState(t *testing.T) {
	handler := NewSelectionHandler(newTestStore())
	r := setupSelectionRouter(handler)

	rec := doRequest(r, "GET", "/selections", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	selections := selectionField(t, rec, "selections").(map[string]interface{})
	for _, category := range models.Categories() {
		if _, ok := selections[string(category)]; !ok {
			t.Errorf("expected selections to include %q", category)
		}
	}
}

func TestSelectionHandler_SetCategory(t *testing.T) {
	t.Run("returns 200 and replaces the category", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "PUT", "/selections/stocks",
			`{"symbols":["PETR4.SA","VALE3.SA"]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		selections := selectionField(t, rec, "selections").(map[string]interface{})
		stocks := selections["stocks"].([]interface{})
		if len(stocks) != 2 || stocks[0] != "PETR4.SA" {
			t.Errorf("unexpected stocks selection: %v", stocks)
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "PUT", "/selections/bonds", `{"symbols":["PETR4.SA"]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing symbols", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "PUT", "/selections/stocks", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed symbol", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "PUT", "/selections/stocks", `{"symbols":["PETR4 SA"]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSelectionHandler_AddSymbol(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/cryptos/symbols", `{"symbol":"BTC-USD"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		selections := selectionField(t, rec, "selections").(map[string]interface{})
		cryptos := selections["cryptos"].([]interface{})
		if len(cryptos) != 1 || cryptos[0] != "BTC-USD" {
			t.Errorf("unexpected cryptos selection: %v", cryptos)
		}
	})

	t.Run("returns 409 on duplicate across categories", func(t *testing.T) {
		store := newTestStore()
		if err := store.AddToCategory(models.CategoryStocks, "PETR4.SA"); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		handler := NewSelectionHandler(store)
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/etfs/symbols", `{"symbol":"petr4.sa"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing symbol", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/stocks/symbols", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSelectionHandler_RemoveSymbol(t *testing.T) {
	t.Run("returns 200 and removes the symbol", func(t *testing.T) {
		store := newTestStore()
		if err := store.SetCategory(models.CategoryStocks, []string{"PETR4.SA", "VALE3.SA"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		handler := NewSelectionHandler(store)
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "DELETE", "/selections/stocks/symbols/PETR4.SA", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		selections := selectionField(t, rec, "selections").(map[string]interface{})
		stocks := selections["stocks"].([]interface{})
		if len(stocks) != 1 || stocks[0] != "VALE3.SA" {
			t.Errorf("unexpected stocks selection: %v", stocks)
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "DELETE", "/selections/bonds/symbols/PETR4.SA", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestSelectionHandler_CustomIndices(t *testing.T) {
	t.Run("add returns 201", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/indices",
			`{"symbol":"^BVSP","name":"IBOVESPA"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		indices := selectionField(t, rec, "customIndices").([]interface{})
		index := indices[0].(map[string]interface{})
		if index["symbol"] != "^BVSP" || index["name"] != "IBOVESPA" {
			t.Errorf("unexpected custom index: %v", index)
		}
	})

	t.Run("add returns 400 on missing name", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/indices", `{"symbol":"^BVSP"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("update keeps own symbol", func(t *testing.T) {
		store := newTestStore()
		if err := store.AddCustomIndex(models.CustomIndex{Symbol: "^BVSP", Name: "IBOVESPA"}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		handler := NewSelectionHandler(store)
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "PUT", "/selections/indices/^BVSP",
			`{"symbol":"^BVSP","name":"Bovespa Index"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		indices := selectionField(t, rec, "customIndices").([]interface{})
		index := indices[0].(map[string]interface{})
		if index["name"] != "Bovespa Index" {
			t.Errorf("expected renamed index, got %v", index)
		}
	})

	t.Run("update returns 404 on unknown index", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "PUT", "/selections/indices/^GSPC",
			`{"symbol":"^GSPC","name":"S&P 500"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("remove returns 404 on unknown index", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "DELETE", "/selections/indices/^GSPC", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSelectionHandler_ManualAssets(t *testing.T) {
	t.Run("add returns 201 and uppercases the symbol", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/manual-assets",
			`{"symbol":"xpto","price":12.34,"change":1.5}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		assets := selectionField(t, rec, "manualAssets").([]interface{})
		asset := assets[0].(map[string]interface{})
		if asset["symbol"] != "XPTO" {
			t.Errorf("expected uppercased symbol, got %v", asset["symbol"])
		}
	})

	t.Run("add returns 400 on non-positive price", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/manual-assets",
			`{"symbol":"XPTO","price":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("add returns 409 on symbol selected elsewhere", func(t *testing.T) {
		store := newTestStore()
		if err := store.AddToCategory(models.CategoryStocks, "XPTO"); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		handler := NewSelectionHandler(store)
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "POST", "/selections/manual-assets",
			`{"symbol":"xpto","price":12.34}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("remove returns 404 on unknown asset", func(t *testing.T) {
		handler := NewSelectionHandler(newTestStore())
		r := setupSelectionRouter(handler)

		rec := doRequest(r, "DELETE", "/selections/manual-assets/XPTO", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
