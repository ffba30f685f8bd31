package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventorySlots(t *testing.T) {
	inv := &Inventory{}

	inv.SetSlot(CategoryItem, 1, 17)
	inv.SetSlot(CategoryOutfit, 9, 5)
	assert.Equal(t, uint16(17), inv.Slot(CategoryItem, 1))
	assert.Equal(t, uint16(5), inv.Slot(CategoryOutfit, 9))

	// out-of-range slots are inert
	inv.SetSlot(CategoryItem, 0, 99)
	inv.SetSlot(CategoryItem, 10, 99)
	assert.Zero(t, inv.Slot(CategoryItem, 0))
	assert.Zero(t, inv.Slot(CategoryItem, 10))
}

func TestInventoryFreeSlot(t *testing.T) {
	inv := &Inventory{}
	assert.Equal(t, uint8(1), inv.FreeSlot(CategoryTool))

	inv.SetSlot(CategoryTool, 1, 3)
	inv.SetSlot(CategoryTool, 2, 4)
	assert.Equal(t, uint8(3), inv.FreeSlot(CategoryTool))

	for i := uint8(1); i <= 9; i++ {
		inv.SetSlot(CategoryItem, i, uint16(i))
	}
	assert.Zero(t, inv.FreeSlot(CategoryItem), "full category reports no free slot")
}

func TestCategoryValid(t *testing.T) {
	assert.False(t, Category(0).Valid())
	assert.True(t, CategoryOutfit.Valid())
	assert.True(t, CategoryTool.Valid())
	assert.False(t, Category(5).Valid())
}
