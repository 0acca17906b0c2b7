package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/imaa0/Inventory-Management/internal/domain"
	"github.com/imaa0/Inventory-Management/internal/repository"
)

var (
	ErrItemNotFound      = repository.ErrItemNotFound
	ErrInsufficientStock = repository.ErrInsufficientStock
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidName       = errors.New("name must be between 1 and 255 characters")
	ErrInvalidQuantity   = errors.New("quantity cannot be negative")
	ErrInvalidUnit       = errors.New("unit is not a valid measurement unit")
	ErrEmptyBatch        = errors.New("batch contains no entries")
)

type ItemRepository interface {
	FindAll(ctx context.Context, search string) ([]domain.Item, error)
	FindByID(ctx context.Context, id uint) (domain.Item, error)
	Create(ctx context.Context, item domain.Item, actorID uint) (domain.Item, error)
	CreateBatch(ctx context.Context, items []domain.Item, actorID uint) ([]domain.Item, error)
	UpdateMetadata(ctx context.Context, id uint, metadata domain.ItemMetadata) (domain.Item, error)
	Delete(ctx context.Context, id uint) error
	AddStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error)
	DeductStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error)
	AddStockBatch(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error)
	DeductStockBatch(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error)
}

// InventoryService owns the ledger rules: amounts must be positive,
// deductions may never take an item negative, and every successful
// mutation pairs a quantity change with exactly one transaction record.
// The repository provides the transactional commit; the rules live here.
type InventoryService struct {
	repo ItemRepository
}

func NewInventoryService(repo ItemRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

func (s *InventoryService) ListItems(ctx context.Context, search string) ([]domain.Item, error) {
	items, err := s.repo.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return items, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id uint) (domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return item, nil
}

// CreateItem stores the item and records its starting quantity as an
// addition entry, as one unit.
func (s *InventoryService) CreateItem(ctx context.Context, item domain.Item, actorID uint) (domain.Item, error) {
	if err := validateNewItem(item); err != nil {
		return domain.Item{}, err
	}

	created, err := s.repo.Create(ctx, item, actorID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// BulkCreateItems creates all items or none. Validation runs over the
// whole batch before anything reaches the store.
func (s *InventoryService) BulkCreateItems(ctx context.Context, items []domain.Item, actorID uint) ([]domain.Item, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	for _, item := range items {
		if err := validateNewItem(item); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.CreateBatch(ctx, items, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
	}

	return created, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, id uint, metadata domain.ItemMetadata) (domain.Item, error) {
	if metadata.Unit != nil && !metadata.Unit.IsValid() {
		return domain.Item{}, ErrInvalidUnit
	}

	updated, err := s.repo.UpdateMetadata(ctx, id, metadata)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.UpdateMetadata -> %w", err)
	}

	return updated, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *InventoryService) AddStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error) {
	if entry.Quantity.Sign() <= 0 {
		return domain.Item{}, ErrInvalidAmount
	}

	item, err := s.repo.AddStock(ctx, entry, actorID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.AddStock -> %w", err)
	}

	return item, nil
}

func (s *InventoryService) DeductStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error) {
	if entry.Quantity.Sign() <= 0 {
		return domain.Item{}, ErrInvalidAmount
	}

	item, err := s.repo.DeductStock(ctx, entry, actorID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.DeductStock -> %w", err)
	}

	return item, nil
}

// BulkAddStock applies all entries as one indivisible batch, in input
// order. An invalid entry anywhere fails the whole batch before any
// write happens; a store-side failure rolls back every entry.
func (s *InventoryService) BulkAddStock(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	items, err := s.repo.AddStockBatch(ctx, entries, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.AddStockBatch -> %w", err)
	}

	return items, nil
}

func (s *InventoryService) BulkDeductStock(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	items, err := s.repo.DeductStockBatch(ctx, entries, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.DeductStockBatch -> %w", err)
	}

	return items, nil
}

func validateNewItem(item domain.Item) error {
	if item.Name == "" || len(item.Name) > 255 {
		return ErrInvalidName
	}
	if item.Quantity.Sign() < 0 {
		return ErrInvalidQuantity
	}
	if !item.Unit.IsValid() {
		return ErrInvalidUnit
	}

	return nil
}

func validateEntries(entries []domain.StockEntry) error {
	if len(entries) == 0 {
		return ErrEmptyBatch
	}

	for _, entry := range entries {
		if entry.Quantity.Sign() <= 0 {
			return ErrInvalidAmount
		}
	}

	return nil
}
