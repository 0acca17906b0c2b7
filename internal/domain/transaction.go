package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	StockAddition  TransactionType = "addition"
	StockDeduction TransactionType = "deduction"
)

// Transaction is one immutable ledger entry: the magnitude of a stock
// change applied to an item, attributed to the acting user. The sign is
// implied by Type; Quantity is always positive.
type Transaction struct {
	ID        uint            `json:"id"`
	ItemID    uint            `json:"item_id"`
	UserID    uint            `json:"user_id"`
	User      *User           `json:"user,omitempty"`
	Type      TransactionType `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockEntry is one element of a stock mutation, single or bulk.
type StockEntry struct {
	ItemID   uint
	Quantity decimal.Decimal
	Notes    string
}
