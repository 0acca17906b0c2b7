package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit an item's quantity is expressed in.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitMeter      Unit = "m"
	UnitCentimeter Unit = "cm"
	UnitPiece      Unit = "units"
	UnitLiter      Unit = "l"
	UnitGram       Unit = "g"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitKilogram, UnitMeter, UnitCentimeter, UnitPiece, UnitLiter, UnitGram:
		return true
	}

	return false
}

type Item struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
	Transactions []Transaction   `json:"transactions,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CanDeduct reports whether deducting amount would keep the quantity non-negative.
func (i *Item) CanDeduct(amount decimal.Decimal) bool {
	return i.Quantity.GreaterThanOrEqual(amount)
}

// ItemMetadata carries the mutable non-stock fields of an item.
// Nil fields are left untouched. Quantity is deliberately absent:
// stock moves only through the ledger.
type ItemMetadata struct {
	Name        *string
	Description *string
	Unit        *Unit
}
