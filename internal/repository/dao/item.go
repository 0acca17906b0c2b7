package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InitialStockNotes is recorded on the addition that mirrors an item's
// starting quantity.
const InitialStockNotes = "Initial stock"

type Item struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null;index"`
	Description string
	Quantity    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Unit        string          `gorm:"not null;default:units"`

	Transactions []Transaction `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Item) TableName() string {
	return "inventory_items"
}

// StockEntry is one quantity change to apply to an item.
type StockEntry struct {
	ItemID   uint
	Quantity decimal.Decimal
	Notes    string
}

type ItemDAO struct {
	db *gorm.DB
}

func NewItemDAO(db *gorm.DB) *ItemDAO {
	return &ItemDAO{
		db: db,
	}
}

func (d *ItemDAO) FindAll(ctx context.Context, search string) ([]Item, error) {
	var items []Item

	query := d.db.WithContext(ctx)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	result := query.Order("name").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (d *ItemDAO) FindByID(ctx context.Context, id uint) (Item, error) {
	var item Item

	result := withHistory(d.db.WithContext(ctx)).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, result.Error
	}

	return item, nil
}

// Insert creates the item together with its initial addition entry.
// Both rows commit or neither does.
func (d *ItemDAO) Insert(ctx context.Context, item Item, userID uint) (Item, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := insertItemTx(tx, item, userID)
		if err != nil {
			return err
		}

		item = created

		return nil
	})
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

// InsertBatch creates all items in one transaction. Any failure rolls
// back every item and initial entry created so far.
func (d *ItemDAO) InsertBatch(ctx context.Context, items []Item, userID uint) ([]Item, error) {
	created := make([]Item, len(items))

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			result, err := insertItemTx(tx, item, userID)
			if err != nil {
				return err
			}

			created[i] = result
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateMetadata changes the given non-stock columns only. The ledger is
// untouched: metadata edits never produce a transaction row.
func (d *ItemDAO) UpdateMetadata(ctx context.Context, id uint, fields map[string]interface{}) (Item, error) {
	var item Item

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}

			return err
		}

		if len(fields) == 0 {
			return nil
		}

		if err := tx.Model(&item).Updates(fields).Error; err != nil {
			return err
		}

		return tx.First(&item, id).Error
	})
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

// Delete removes the item and all its transactions.
func (d *ItemDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item Item
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}

			return err
		}

		if err := tx.Where("item_id = ?", id).Delete(&Transaction{}).Error; err != nil {
			return err
		}

		return tx.Delete(&item).Error
	})
}

func (d *ItemDAO) AddStock(ctx context.Context, entry StockEntry, userID uint) (Item, error) {
	var item Item

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := applyStockTx(tx, entry, userID, StockAddition)
		if err != nil {
			return err
		}

		item = updated

		return nil
	})
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

func (d *ItemDAO) DeductStock(ctx context.Context, entry StockEntry, userID uint) (Item, error) {
	var item Item

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated, err := applyStockTx(tx, entry, userID, StockDeduction)
		if err != nil {
			return err
		}

		item = updated

		return nil
	})
	if err != nil {
		return Item{}, err
	}

	return item, nil
}

// AddStockBatch applies every entry inside one transaction, in input
// order. The first failure aborts the lot.
func (d *ItemDAO) AddStockBatch(ctx context.Context, entries []StockEntry, userID uint) ([]Item, error) {
	return d.applyStockBatch(ctx, entries, userID, StockAddition)
}

func (d *ItemDAO) DeductStockBatch(ctx context.Context, entries []StockEntry, userID uint) ([]Item, error) {
	return d.applyStockBatch(ctx, entries, userID, StockDeduction)
}

func (d *ItemDAO) applyStockBatch(ctx context.Context, entries []StockEntry, userID uint, txType TransactionType) ([]Item, error) {
	items := make([]Item, len(entries))

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, entry := range entries {
			updated, err := applyStockTx(tx, entry, userID, txType)
			if err != nil {
				return err
			}

			items[i] = updated
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// applyStockTx is the ledger write: lock the item row, move the
// quantity, append the transaction. Deductions that would go negative
// fail before anything is written. Callers supply the enclosing
// transaction, so every exit path rolls back cleanly.
func applyStockTx(tx *gorm.DB, entry StockEntry, userID uint, txType TransactionType) (Item, error) {
	var item Item

	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, entry.ItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Item{}, ErrItemNotFound
		}

		return Item{}, err
	}

	switch txType {
	case StockAddition:
		item.Quantity = item.Quantity.Add(entry.Quantity)
	case StockDeduction:
		if item.Quantity.LessThan(entry.Quantity) {
			return Item{}, ErrInsufficientStock
		}

		item.Quantity = item.Quantity.Sub(entry.Quantity)
	}

	if err = tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
		return Item{}, err
	}

	record := Transaction{
		ItemID:   item.ID,
		UserID:   userID,
		Type:     txType,
		Quantity: entry.Quantity,
		Notes:    entry.Notes,
	}
	if err = tx.Create(&record).Error; err != nil {
		return Item{}, err
	}

	return reloadWithHistory(tx, item.ID)
}

func insertItemTx(tx *gorm.DB, item Item, userID uint) (Item, error) {
	if err := tx.Omit("Transactions").Create(&item).Error; err != nil {
		return Item{}, err
	}

	record := Transaction{
		ItemID:   item.ID,
		UserID:   userID,
		Type:     StockAddition,
		Quantity: item.Quantity,
		Notes:    InitialStockNotes,
	}
	if err := tx.Create(&record).Error; err != nil {
		return Item{}, err
	}

	return reloadWithHistory(tx, item.ID)
}

func reloadWithHistory(tx *gorm.DB, id uint) (Item, error) {
	var item Item

	if err := withHistory(tx).First(&item, id).Error; err != nil {
		return Item{}, err
	}

	return item, nil
}

// withHistory preloads the ledger newest first, with the acting user.
func withHistory(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Transactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("inventory_transactions.created_at DESC, inventory_transactions.id DESC")
		}).
		Preload("Transactions.User")
}
