package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/pos-caisse/internal/cart/domain"
	"github.com/ridloal/pos-caisse/internal/cart/service"
	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/catalog/repository"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryCatalogRepository(
		[]catalog.Product{{ID: "1", Name: "T-shirt", Price: decimal.NewFromInt(50)}},
		nil,
	)
	router := gin.New()
	NewCartHandler(service.NewCartService(repo), decimal.RequireFromString("0.2")).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartHandler_Flow(t *testing.T) {
	router := newTestRouter()

	rec := do(router, http.MethodPost, "/api/v1/carts", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var opened service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	require.NotEmpty(t, opened.SessionID)
	base := "/api/v1/carts/" + opened.SessionID

	rec = do(router, http.MethodPost, base+"/items", `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(router, http.MethodPost, base+"/items", `{"product_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, base+"?discount=20&advance=30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 2, summary.Lines[0].Quantity)
	// 100 - 20 + 20
	assert.True(t, summary.Totals.Total.Equal(decimal.NewFromInt(100)), summary.Totals.Total.String())
	assert.True(t, summary.Totals.Remaining.Equal(decimal.NewFromInt(70)))

	rec = do(router, http.MethodPatch, base+"/items/1", `{"delta":-2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Empty(t, summary.Lines)

	rec = do(router, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCartHandler_Errors(t *testing.T) {
	router := newTestRouter()

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/v1/carts/unknown", "").Code)

	rec := do(router, http.MethodPost, "/api/v1/carts", "")
	var opened service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	base := "/api/v1/carts/" + opened.SessionID

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, base+"/items", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPost, base+"/items", `{"product_id":"404"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodPatch, base+"/items/1", `{"delta":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, base+"?discount=abc", "").Code)
}

func TestCartHandler_HugeDeltaKeepsTheLine(t *testing.T) {
	router := newTestRouter()

	rec := do(router, http.MethodPost, "/api/v1/carts", "")
	var opened service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opened))
	base := "/api/v1/carts/" + opened.SessionID
	require.Equal(t, http.StatusOK, do(router, http.MethodPost, base+"/items", `{"product_id":"1"}`).Code)

	rec = do(router, http.MethodPatch, base+"/items/1", `{"delta":9223372036854775807}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, domain.MaxLineQuantity, summary.Lines[0].Quantity)
}
