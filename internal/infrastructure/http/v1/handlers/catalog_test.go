package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sklad/internal/core/id"
	"sklad/internal/infrastructure/http/v1/dto"
)

func newOptionsRouter(list func(ctx context.Context) ([]dto.CatalogResponse, error)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(NewBaseHandler(), CatalogHandlerConfig{
		EntityName: "resource",
		List:       list,
	})
	r := gin.New()
	h.RegisterRoutes(r.Group("/resources"))
	return r
}

func TestCatalogOptions(t *testing.T) {
	t.Run("returns id and name without status", func(t *testing.T) {
		rows := []dto.CatalogResponse{
			{ID: id.New().String(), Name: "Cement", Status: "active"},
			{ID: id.New().String(), Name: "Sand", Status: "archived"},
		}
		r := newOptionsRouter(func(ctx context.Context) ([]dto.CatalogResponse, error) {
			return rows, nil
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/resources/options", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Items      []map[string]any `json:"items"`
			TotalCount int              `json:"totalCount"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Items, 2)
		assert.Equal(t, 2, body.TotalCount)
		assert.Equal(t, rows[0].ID, body.Items[0]["id"])
		assert.Equal(t, "Cement", body.Items[0]["name"])
		assert.Equal(t, "Sand", body.Items[1]["name"])
		for _, item := range body.Items {
			assert.NotContains(t, item, "status")
		}
	})

	t.Run("empty catalog yields empty items", func(t *testing.T) {
		r := newOptionsRouter(func(ctx context.Context) ([]dto.CatalogResponse, error) {
			return nil, nil
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/resources/options", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"items":[],"totalCount":0}`, w.Body.String())
	})
}
