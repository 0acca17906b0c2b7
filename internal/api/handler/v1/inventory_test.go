package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaa0/Inventory-Management/internal/api/middleware"
	"github.com/imaa0/Inventory-Management/internal/domain"
	"github.com/imaa0/Inventory-Management/internal/service"
)

type stubInventoryService struct {
	items []domain.Item
	item  domain.Item
	err   error

	gotSearch  string
	gotActorID uint
	gotEntries []domain.StockEntry
	gotEntry   domain.StockEntry
}

func (s *stubInventoryService) ListItems(_ context.Context, search string) ([]domain.Item, error) {
	s.gotSearch = search
	return s.items, s.err
}

func (s *stubInventoryService) GetItem(_ context.Context, id uint) (domain.Item, error) {
	return s.item, s.err
}

func (s *stubInventoryService) CreateItem(_ context.Context, item domain.Item, actorID uint) (domain.Item, error) {
	s.gotActorID = actorID
	return s.item, s.err
}

func (s *stubInventoryService) BulkCreateItems(_ context.Context, items []domain.Item, actorID uint) ([]domain.Item, error) {
	s.gotActorID = actorID
	return s.items, s.err
}

func (s *stubInventoryService) UpdateItem(_ context.Context, id uint, metadata domain.ItemMetadata) (domain.Item, error) {
	return s.item, s.err
}

func (s *stubInventoryService) DeleteItem(_ context.Context, id uint) error {
	return s.err
}

func (s *stubInventoryService) AddStock(_ context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error) {
	s.gotEntry = entry
	s.gotActorID = actorID
	return s.item, s.err
}

func (s *stubInventoryService) DeductStock(_ context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error) {
	s.gotEntry = entry
	s.gotActorID = actorID
	return s.item, s.err
}

func (s *stubInventoryService) BulkAddStock(_ context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error) {
	s.gotEntries = entries
	s.gotActorID = actorID
	return s.items, s.err
}

func (s *stubInventoryService) BulkDeductStock(_ context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error) {
	s.gotEntries = entries
	s.gotActorID = actorID
	return s.items, s.err
}

func setupItemsRouter(svc InventoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, uint(7))
	})

	handler := NewInventoryHandler(svc)
	router.GET("/items", handler.HandleListItems)
	router.POST("/items", handler.HandleCreateItem)
	router.POST("/items/bulk", handler.HandleBulkCreateItems)
	router.POST("/items/bulk-add", handler.HandleBulkAddStock)
	router.POST("/items/bulk-deduct", handler.HandleBulkDeductStock)
	router.GET("/items/:itemID", handler.HandleGetItem)
	router.PUT("/items/:itemID", handler.HandleUpdateItem)
	router.DELETE("/items/:itemID", handler.HandleDeleteItem)
	router.POST("/items/:itemID/add-stock", handler.HandleAddStock)
	router.POST("/items/:itemID/deduct-stock", handler.HandleDeductStock)

	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

func TestHandleListItems(t *testing.T) {
	svc := &stubInventoryService{
		items: []domain.Item{
			{ID: 1, Name: "Screws", Quantity: decimal.NewFromInt(100), Unit: domain.UnitPiece},
		},
	}
	router := setupItemsRouter(svc)

	resp := doRequest(router, http.MethodGet, "/items?search=scr", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "scr", svc.gotSearch)
	assert.Contains(t, resp.Body.String(), `"Screws"`)
}

func TestHandleGetItem(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		svcErr   error
		wantCode int
	}{
		{
			name:     "found",
			path:     "/items/1",
			wantCode: http.StatusOK,
		},
		{
			name:     "not found",
			path:     "/items/99",
			svcErr:   service.ErrItemNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "bad ID",
			path:     "/items/abc",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "store failure",
			path:     "/items/1",
			svcErr:   assert.AnError,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubInventoryService{
				item: domain.Item{ID: 1, Name: "Screws", Unit: domain.UnitPiece},
				err:  tt.svcErr,
			}
			router := setupItemsRouter(svc)

			resp := doRequest(router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleCreateItem(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{
			name:     "created",
			body:     `{"name":"Screws","quantity":100,"unit":"units"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "invalid JSON",
			body:     `{`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing unit",
			body:     `{"name":"Screws","quantity":100}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative quantity",
			body:     `{"name":"Screws","quantity":-1,"unit":"units"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubInventoryService{
				item: domain.Item{ID: 1, Name: "Screws", Unit: domain.UnitPiece},
				err:  tt.svcErr,
			}
			router := setupItemsRouter(svc)

			resp := doRequest(router, http.MethodPost, "/items", tt.body)

			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, uint(7), svc.gotActorID)
			}
		})
	}
}

func TestHandleCreateItem_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewInventoryHandler(&stubInventoryService{})
	router.POST("/items", handler.HandleCreateItem)

	resp := doRequest(router, http.MethodPost, "/items", `{"name":"Screws","quantity":1,"unit":"units"}`)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandleBulkCreateItems(t *testing.T) {
	svc := &stubInventoryService{
		items: []domain.Item{{ID: 1}, {ID: 2}},
	}
	router := setupItemsRouter(svc)

	body := `{"items":[{"name":"Flour","quantity":5,"unit":"kg"},{"name":"Milk","quantity":2,"unit":"l"}]}`
	resp := doRequest(router, http.MethodPost, "/items/bulk", body)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, uint(7), svc.gotActorID)
}

func TestHandleBulkCreateItems_EmptyBatch(t *testing.T) {
	router := setupItemsRouter(&stubInventoryService{})

	resp := doRequest(router, http.MethodPost, "/items/bulk", `{"items":[]}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleUpdateItem(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{
			name:     "updated",
			body:     `{"name":"Brown sugar","unit":"g"}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "not found",
			body:     `{"name":"Brown sugar"}`,
			svcErr:   service.ErrItemNotFound,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown unit",
			body:     `{"unit":"boxes"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubInventoryService{err: tt.svcErr}
			router := setupItemsRouter(svc)

			resp := doRequest(router, http.MethodPut, "/items/1", tt.body)

			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleDeleteItem(t *testing.T) {
	router := setupItemsRouter(&stubInventoryService{})

	resp := doRequest(router, http.MethodDelete, "/items/1", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "deleted")
}

func TestHandleDeleteItem_NotFound(t *testing.T) {
	router := setupItemsRouter(&stubInventoryService{err: service.ErrItemNotFound})

	resp := doRequest(router, http.MethodDelete, "/items/99", "")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleAddStock(t *testing.T) {
	svc := &stubInventoryService{
		item: domain.Item{ID: 1, Quantity: decimal.NewFromInt(12)},
	}
	router := setupItemsRouter(svc)

	resp := doRequest(router, http.MethodPost, "/items/1/add-stock", `{"quantity":2,"notes":"restock"}`)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, uint(1), svc.gotEntry.ItemID)
	assert.True(t, svc.gotEntry.Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "restock", svc.gotEntry.Notes)
	assert.Equal(t, uint(7), svc.gotActorID)
}

func TestHandleDeductStock(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{
			name:     "deducted",
			body:     `{"quantity":4}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "insufficient stock",
			body:     `{"quantity":999}`,
			svcErr:   service.ErrInsufficientStock,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero amount",
			body:     `{"quantity":0}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative amount",
			body:     `{"quantity":-3}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "item not found",
			body:     `{"quantity":1}`,
			svcErr:   service.ErrItemNotFound,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubInventoryService{err: tt.svcErr}
			router := setupItemsRouter(svc)

			resp := doRequest(router, http.MethodPost, "/items/1/deduct-stock", tt.body)

			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleBulkDeductStock(t *testing.T) {
	svc := &stubInventoryService{
		items: []domain.Item{{ID: 1}, {ID: 2}},
	}
	router := setupItemsRouter(svc)

	body := `{"items":[{"id":1,"quantity":20},{"id":2,"quantity":10}]}`
	resp := doRequest(router, http.MethodPost, "/items/bulk-deduct", body)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, svc.gotEntries, 2)
	assert.Equal(t, uint(1), svc.gotEntries[0].ItemID)
	assert.True(t, svc.gotEntries[1].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestHandleBulkDeductStock_Insufficient(t *testing.T) {
	router := setupItemsRouter(&stubInventoryService{err: service.ErrInsufficientStock})

	body := `{"items":[{"id":1,"quantity":20}]}`
	resp := doRequest(router, http.MethodPost, "/items/bulk-deduct", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleBulkAddStock_InvalidEntry(t *testing.T) {
	router := setupItemsRouter(&stubInventoryService{})

	body := `{"items":[{"id":1,"quantity":10},{"id":2,"quantity":-3}]}`
	resp := doRequest(router, http.MethodPost, "/items/bulk-add", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
