package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/pos-caisse/internal/contact/domain"
	"github.com/ridloal/pos-caisse/internal/contact/repository"
	"github.com/ridloal/pos-caisse/internal/contact/service"
)

func TestContactHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryCustomerRepository([]domain.Customer{
		{ID: "1", Name: "Jean Dupont", Phone: "+33 1 23 45 67 89"},
		{ID: "2", Name: "Marie Martin", Phone: "+33 1 23 45 67 90"},
	})
	router := gin.New()
	NewContactHandler(service.NewContactService(repo)).RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers?search=marie", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/customers/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactHandler_CreateAndUpdate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewContactHandler(service.NewContactService(repository.NewMemoryCustomerRepository(nil))).RegisterRoutes(router.Group("/api/v1"))

	send := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := send(http.MethodPost, "/api/v1/customers", `{"name":"Luc Petit","phone":"06 12 34 56 78"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.KindClient, created.Kind)

	rec = send(http.MethodPost, "/api/v1/customers", `{"kind":"supplier","name":"Leroy","company":"Leroy SA"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(http.MethodGet, "/api/v1/customers?kind=supplier", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var suppliers []domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suppliers))
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Leroy SA", suppliers[0].Company)

	rec = send(http.MethodPut, "/api/v1/customers/"+created.ID, `{"name":"Luc Petit-Jean","phone":"06 12 34 56 79"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Luc Petit-Jean")

	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/api/v1/customers", `{"name":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/api/v1/customers", `{"name":"Luc","phone":"abc"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPut, "/api/v1/customers/"+created.ID, `{"name":"Luc","phone":"12"}`).Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodPut, "/api/v1/customers/42", `{"name":"Luc"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodGet, "/api/v1/customers?kind=partner", "").Code)
}
