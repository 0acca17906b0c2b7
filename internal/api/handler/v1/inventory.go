package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imaa0/Inventory-Management/internal/api/handler/v1/request"
	"github.com/imaa0/Inventory-Management/internal/api/handler/v1/response"
	"github.com/imaa0/Inventory-Management/internal/domain"
	"github.com/imaa0/Inventory-Management/internal/service"
)

type InventoryService interface {
	ListItems(ctx context.Context, search string) ([]domain.Item, error)
	GetItem(ctx context.Context, id uint) (domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item, actorID uint) (domain.Item, error)
	BulkCreateItems(ctx context.Context, items []domain.Item, actorID uint) ([]domain.Item, error)
	UpdateItem(ctx context.Context, id uint, metadata domain.ItemMetadata) (domain.Item, error)
	DeleteItem(ctx context.Context, id uint) error
	AddStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error)
	DeductStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error)
	BulkAddStock(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error)
	BulkDeductStock(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error)
}

type InventoryHandler struct {
	svc InventoryService
}

func NewInventoryHandler(svc InventoryService) *InventoryHandler {
	return &InventoryHandler{
		svc: svc,
	}
}

// HandleListItems godoc
// @Summary      List inventory items
// @Description  Lists all items, optionally filtered by a case-insensitive name substring, ordered by name.
// @Tags         items
// @Produce      json
// @Param        search  query     string  false  "Name filter"
// @Success      200     {array}   domain.Item
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /items [get]
// @Security BearerAuth
func (h *InventoryHandler) HandleListItems(ctx *gin.Context) {
	items, err := h.svc.ListItems(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListItems -> h.svc.ListItems -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetItem godoc
// @Summary      Get one item with its transaction history
// @Tags         items
// @Produce      json
// @Param        itemID  path      int  true  "Item ID"
// @Success      200     {object}  domain.Item
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /items/{itemID} [get]
// @Security BearerAuth
func (h *InventoryHandler) HandleGetItem(ctx *gin.Context) {
	itemID, respErr := parseItemID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	item, err := h.svc.GetItem(ctx.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
			return
		}

		err = fmt.Errorf("v1.HandleGetItem -> h.svc.GetItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleCreateItem godoc
// @Summary      Create an inventory item
// @Description  Creates the item and records its starting quantity as the first ledger entry.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateItemRequest  true  "Item details"
// @Success      201      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleCreateItem(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateItem(ctx.Request.Context(), itemFromRequest(req), userID)
	if err != nil {
		renderMutationErr(ctx, fmt.Errorf("v1.HandleCreateItem -> h.svc.CreateItem -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleBulkCreateItems godoc
// @Summary      Create many items in one call
// @Description  Creates every item in the batch as one unit. If any element fails, nothing is created.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      request.BulkCreateItemsRequest  true  "Items to create"
// @Success      201      {array}   domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/bulk [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleBulkCreateItems(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BulkCreateItemsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	items := make([]domain.Item, len(req.Items))
	for i, itemReq := range req.Items {
		items[i] = itemFromRequest(itemReq)
	}

	created, err := h.svc.BulkCreateItems(ctx.Request.Context(), items, userID)
	if err != nil {
		renderMutationErr(ctx, fmt.Errorf("v1.HandleBulkCreateItems -> h.svc.BulkCreateItems -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateItem godoc
// @Summary      Update item metadata
// @Description  Changes name, description and/or unit. The quantity and the ledger are never touched here.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                        true  "Item ID"
// @Param        request  body      request.UpdateItemRequest  true  "Fields to change"
// @Success      200      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID} [put]
// @Security BearerAuth
func (h *InventoryHandler) HandleUpdateItem(ctx *gin.Context) {
	itemID, respErr := parseItemID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	metadata := domain.ItemMetadata{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Unit != nil {
		unit := domain.Unit(*req.Unit)
		metadata.Unit = &unit
	}

	updated, err := h.svc.UpdateItem(ctx.Request.Context(), itemID, metadata)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
			return
		}

		renderMutationErr(ctx, fmt.Errorf("v1.HandleUpdateItem -> h.svc.UpdateItem -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteItem godoc
// @Summary      Delete an item
// @Description  Removes the item together with its whole transaction history.
// @Tags         items
// @Produce      json
// @Param        itemID  path      int  true  "Item ID"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /items/{itemID} [delete]
// @Security BearerAuth
func (h *InventoryHandler) HandleDeleteItem(ctx *gin.Context) {
	itemID, respErr := parseItemID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteItem(ctx.Request.Context(), itemID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteItem -> h.svc.DeleteItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// HandleAddStock godoc
// @Summary      Add stock to an item
// @Description  Increments the quantity and appends an addition entry to the ledger, atomically.
// @Tags         items,stock
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                   true  "Item ID"
// @Param        request  body      request.StockRequest  true  "Amount and optional notes"
// @Success      200      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID}/add-stock [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleAddStock(ctx *gin.Context) {
	h.handleStockMutation(ctx, h.svc.AddStock)
}

// HandleDeductStock godoc
// @Summary      Deduct stock from an item
// @Description  Decrements the quantity and appends a deduction entry, atomically. Fails if the item holds less than the requested amount.
// @Tags         items,stock
// @Accept       json
// @Produce      json
// @Param        itemID   path      int                   true  "Item ID"
// @Param        request  body      request.StockRequest  true  "Amount and optional notes"
// @Success      200      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID}/deduct-stock [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleDeductStock(ctx *gin.Context) {
	h.handleStockMutation(ctx, h.svc.DeductStock)
}

func (h *InventoryHandler) handleStockMutation(ctx *gin.Context, mutate func(context.Context, domain.StockEntry, uint) (domain.Item, error)) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, respErr := parseItemID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry := domain.StockEntry{
		ItemID:   itemID,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	}

	item, err := mutate(ctx.Request.Context(), entry, userID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
			return
		}

		renderMutationErr(ctx, fmt.Errorf("v1.handleStockMutation -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleBulkAddStock godoc
// @Summary      Add stock to several items in one call
// @Description  Applies every entry as one unit, in input order. If any entry fails, no quantity or ledger change is kept.
// @Tags         items,stock
// @Accept       json
// @Produce      json
// @Param        request  body      request.BulkStockRequest  true  "Entries"
// @Success      200      {array}   domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/bulk-add [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleBulkAddStock(ctx *gin.Context) {
	h.handleBulkStockMutation(ctx, h.svc.BulkAddStock)
}

// HandleBulkDeductStock godoc
// @Summary      Deduct stock from several items in one call
// @Description  Same batch semantics as bulk add; an insufficient balance anywhere aborts the whole batch.
// @Tags         items,stock
// @Accept       json
// @Produce      json
// @Param        request  body      request.BulkStockRequest  true  "Entries"
// @Success      200      {array}   domain.Item
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/bulk-deduct [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleBulkDeductStock(ctx *gin.Context) {
	h.handleBulkStockMutation(ctx, h.svc.BulkDeductStock)
}

func (h *InventoryHandler) handleBulkStockMutation(ctx *gin.Context, mutate func(context.Context, []domain.StockEntry, uint) ([]domain.Item, error)) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.BulkStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entries := make([]domain.StockEntry, len(req.Items))
	for i, item := range req.Items {
		entries[i] = domain.StockEntry{
			ItemID:   item.ID,
			Quantity: item.Quantity,
			Notes:    item.Notes,
		}
	}

	items, err := mutate(ctx.Request.Context(), entries, userID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", "batch"))
			return
		}

		renderMutationErr(ctx, fmt.Errorf("v1.handleBulkStockMutation -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

func parseItemID(ctx *gin.Context) (uint, *response.Err) {
	itemID, err := strconv.ParseUint(ctx.Param("itemID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid item ID: %w", err))
	}

	return uint(itemID), nil
}

func itemFromRequest(req request.CreateItemRequest) domain.Item {
	return domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        domain.Unit(req.Unit),
	}
}

// renderMutationErr maps the ledger's sentinel failures onto 400s and
// everything else onto a generic 500.
func renderMutationErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInsufficientStock))
	case errors.Is(err, service.ErrInvalidAmount):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidAmount))
	case errors.Is(err, service.ErrInvalidName):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidName))
	case errors.Is(err, service.ErrInvalidQuantity):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidQuantity))
	case errors.Is(err, service.ErrInvalidUnit):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidUnit))
	case errors.Is(err, service.ErrEmptyBatch):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrEmptyBatch))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
