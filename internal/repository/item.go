package repository

import (
	"context"
	"fmt"

	"github.com/imaa0/Inventory-Management/internal/domain"
	"github.com/imaa0/Inventory-Management/internal/repository/dao"
)

var (
	ErrItemNotFound      = dao.ErrItemNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
)

type ItemDAO interface {
	FindAll(ctx context.Context, search string) ([]dao.Item, error)
	FindByID(ctx context.Context, id uint) (dao.Item, error)
	Insert(ctx context.Context, item dao.Item, userID uint) (dao.Item, error)
	InsertBatch(ctx context.Context, items []dao.Item, userID uint) ([]dao.Item, error)
	UpdateMetadata(ctx context.Context, id uint, fields map[string]interface{}) (dao.Item, error)
	Delete(ctx context.Context, id uint) error
	AddStock(ctx context.Context, entry dao.StockEntry, userID uint) (dao.Item, error)
	DeductStock(ctx context.Context, entry dao.StockEntry, userID uint) (dao.Item, error)
	AddStockBatch(ctx context.Context, entries []dao.StockEntry, userID uint) ([]dao.Item, error)
	DeductStockBatch(ctx context.Context, entries []dao.StockEntry, userID uint) ([]dao.Item, error)
}

type ItemRepository struct {
	dao ItemDAO
}

func NewItemRepository(dao ItemDAO) *ItemRepository {
	return &ItemRepository{
		dao: dao,
	}
}

func (r *ItemRepository) FindAll(ctx context.Context, search string) ([]domain.Item, error) {
	found, err := r.dao.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uint) (domain.Item, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ItemRepository) Create(ctx context.Context, item domain.Item, actorID uint) (domain.Item, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(item), actorID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ItemRepository) CreateBatch(ctx context.Context, items []domain.Item, actorID uint) ([]domain.Item, error) {
	daoItems := make([]dao.Item, len(items))
	for i, item := range items {
		daoItems[i] = r.domainToDao(item)
	}

	created, err := r.dao.InsertBatch(ctx, daoItems, actorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.daosToDomain(created), nil
}

func (r *ItemRepository) UpdateMetadata(ctx context.Context, id uint, metadata domain.ItemMetadata) (domain.Item, error) {
	fields := map[string]interface{}{}
	if metadata.Name != nil {
		fields["name"] = *metadata.Name
	}
	if metadata.Description != nil {
		fields["description"] = *metadata.Description
	}
	if metadata.Unit != nil {
		fields["unit"] = string(*metadata.Unit)
	}

	updated, err := r.dao.UpdateMetadata(ctx, id, fields)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.UpdateMetadata -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ItemRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ItemRepository) AddStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error) {
	updated, err := r.dao.AddStock(ctx, r.entryDomainToDao(entry), actorID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.AddStock -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ItemRepository) DeductStock(ctx context.Context, entry domain.StockEntry, actorID uint) (domain.Item, error) {
	updated, err := r.dao.DeductStock(ctx, r.entryDomainToDao(entry), actorID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.DeductStock -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ItemRepository) AddStockBatch(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error) {
	updated, err := r.dao.AddStockBatch(ctx, r.entriesDomainToDao(entries), actorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.AddStockBatch -> %w", err)
	}

	return r.daosToDomain(updated), nil
}

func (r *ItemRepository) DeductStockBatch(ctx context.Context, entries []domain.StockEntry, actorID uint) ([]domain.Item, error) {
	updated, err := r.dao.DeductStockBatch(ctx, r.entriesDomainToDao(entries), actorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.DeductStockBatch -> %w", err)
	}

	return r.daosToDomain(updated), nil
}

func (r *ItemRepository) domainToDao(item domain.Item) dao.Item {
	return dao.Item{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Unit:        string(item.Unit),
	}
}

func (r *ItemRepository) daoToDomain(item dao.Item) domain.Item {
	return domain.Item{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		Quantity:     item.Quantity,
		Unit:         domain.Unit(item.Unit),
		Transactions: r.transactionsDaoToDomain(item.Transactions),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (r *ItemRepository) daosToDomain(items []dao.Item) []domain.Item {
	result := make([]domain.Item, len(items))
	for i, item := range items {
		result[i] = r.daoToDomain(item)
	}

	return result
}

func (r *ItemRepository) entryDomainToDao(entry domain.StockEntry) dao.StockEntry {
	return dao.StockEntry{
		ItemID:   entry.ItemID,
		Quantity: entry.Quantity,
		Notes:    entry.Notes,
	}
}

func (r *ItemRepository) entriesDomainToDao(entries []domain.StockEntry) []dao.StockEntry {
	result := make([]dao.StockEntry, len(entries))
	for i, entry := range entries {
		result[i] = r.entryDomainToDao(entry)
	}

	return result
}

func (r *ItemRepository) transactionsDaoToDomain(transactions []dao.Transaction) []domain.Transaction {
	if len(transactions) == 0 {
		return nil
	}

	result := make([]domain.Transaction, len(transactions))
	for i, t := range transactions {
		result[i] = domain.Transaction{
			ID:        t.ID,
			ItemID:    t.ItemID,
			UserID:    t.UserID,
			Type:      domain.TransactionType(t.Type),
			Quantity:  t.Quantity,
			Notes:     t.Notes,
			CreatedAt: t.CreatedAt,
		}

		if t.User.ID != 0 {
			result[i].User = &domain.User{
				ID:        t.User.ID,
				Email:     t.User.Email,
				Name:      t.User.Name,
				CreatedAt: t.User.CreatedAt,
				UpdatedAt: t.User.UpdatedAt,
			}
		}
	}

	return result
}
