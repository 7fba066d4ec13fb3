package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryItemApply(t *testing.T) {
	item := &InventoryItem{Name: "Chalk Box", Quantity: 10}

	require.NoError(t, item.Apply(StockIn, 5))
	assert.Equal(t, 15, item.Quantity)

	require.NoError(t, item.Apply(StockOut, 12))
	assert.Equal(t, 3, item.Quantity)
}

func TestInventoryItemApplyRejectsOverdraw(t *testing.T) {
	item := &InventoryItem{Name: "Projector", Quantity: 2}

	err := item.Apply(StockOut, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, 2, item.Quantity, "failed movement must not change stock")
}

func TestInventoryItemApplyRejectsBadInput(t *testing.T) {
	item := &InventoryItem{Name: "Desk", Quantity: 4}

	assert.Error(t, item.Apply(StockIn, 0))
	assert.Error(t, item.Apply(StockOut, -1))
	assert.Error(t, item.Apply("SIDEWAYS", 1))
	assert.Equal(t, 4, item.Quantity)
}

func TestInventoryItemIsLowStock(t *testing.T) {
	item := &InventoryItem{Quantity: 10, ReorderLevel: 10}
	assert.False(t, item.IsLowStock(), "at the reorder level is not yet low")

	item.Quantity = 9
	assert.True(t, item.IsLowStock())
}
