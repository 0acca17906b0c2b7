package dao

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	StockAddition  TransactionType = "addition"
	StockDeduction TransactionType = "deduction"
)

// Transaction rows are append-only. Nothing in the DAO updates or
// deletes them individually; they only go away when their item does.
type Transaction struct {
	ID       uint            `gorm:"primaryKey"`
	ItemID   uint            `gorm:"not null;index"`
	UserID   uint            `gorm:"not null"`
	User     User            `gorm:"foreignKey:UserID"`
	Type     TransactionType `gorm:"not null"`
	Quantity decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Transaction) TableName() string {
	return "inventory_transactions"
}
