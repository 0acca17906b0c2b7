package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var unitRule = validation.In("kg", "m", "cm", "units", "l", "g")

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || amount.Sign() <= 0 {
		return errors.New("must be greater than zero")
	}

	return nil
}

func nonNegativeAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || amount.Sign() < 0 {
		return errors.New("must be zero or greater")
	}

	return nil
}

type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

func (req *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Quantity, validation.By(nonNegativeAmount)),
		validation.Field(&req.Unit, validation.Required, unitRule),
	)
}

type BulkCreateItemsRequest struct {
	Items []CreateItemRequest `json:"items"`
}

func (req *BulkCreateItemsRequest) Validate() error {
	if len(req.Items) == 0 {
		return errors.New("items must not be empty")
	}

	for i := range req.Items {
		if err := req.Items[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
}

func (req *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Unit, unitRule),
	)
}

type StockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes"`
}

func (req *StockRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.By(positiveAmount)),
	)
}

type BulkStockEntry struct {
	ID       uint            `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes"`
}

func (entry BulkStockEntry) Validate() error {
	return validation.ValidateStruct(
		&entry,
		validation.Field(&entry.ID, validation.Required),
		validation.Field(&entry.Quantity, validation.By(positiveAmount)),
	)
}

type BulkStockRequest struct {
	Items []BulkStockEntry `json:"items"`
}

func (req *BulkStockRequest) Validate() error {
	if len(req.Items) == 0 {
		return errors.New("items must not be empty")
	}

	for i := range req.Items {
		if err := req.Items[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
