package models

import (
	"errors"
	"fmt"
	"time"
)

// ItemCategory classifies inventory stock.
type ItemCategory string

const (
	CategoryStationery  ItemCategory = "STATIONERY"
	CategoryFurniture   ItemCategory = "FURNITURE"
	CategoryElectronics ItemCategory = "ELECTRONICS"
	CategoryOther       ItemCategory = "OTHER"
)

// StockDirection is the direction of an inventory movement.
type StockDirection string

const (
	StockIn  StockDirection = "IN"
	StockOut StockDirection = "OUT"
)

// ErrInsufficientStock rejects an OUT movement larger than the on-hand
// quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// InventoryItem is a tracked stock line. Quantity changes only through
// inventory transactions; ReorderLevel drives the low-stock alert.
type InventoryItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name" validate:"required"`
	Category     ItemCategory `json:"category" validate:"omitempty,oneof=STATIONERY FURNITURE ELECTRONICS OTHER"`
	Quantity     int          `json:"quantity"`
	ReorderLevel int          `json:"reorder_level"`
	UnitPrice    *float64     `json:"unit_price,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Apply adjusts the on-hand quantity for one stock movement.
func (i *InventoryItem) Apply(direction StockDirection, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	switch direction {
	case StockIn:
		i.Quantity += quantity
	case StockOut:
		if quantity > i.Quantity {
			return fmt.Errorf("%w: %d requested, %d on hand", ErrInsufficientStock, quantity, i.Quantity)
		}
		i.Quantity -= quantity
	default:
		return fmt.Errorf("unknown stock direction %q", direction)
	}
	return nil
}

// IsLowStock reports whether on-hand stock has dropped below the reorder
// level.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < i.ReorderLevel
}

// InventoryTransaction is one stock movement against an item.
type InventoryTransaction struct {
	ID              string         `json:"id"`
	ItemID          string         `json:"item_id" validate:"required"`
	ItemName        string         `json:"item_name,omitempty"`
	Direction       StockDirection `json:"direction" validate:"required,oneof=IN OUT"`
	Quantity        int            `json:"quantity" validate:"required,gt=0"`
	TransactionDate time.Time      `json:"transaction_date"`
	Remarks         string         `json:"remarks,omitempty"`
}
