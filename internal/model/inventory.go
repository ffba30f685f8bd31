package model

import "github.com/udisondev/slime2go/internal/constants"

// Category identifies an inventory compartment. The values double as shop
// categories on the wire.
type Category uint8

const (
	CategoryOutfit    Category = 1
	CategoryAccessory Category = 2
	CategoryItem      Category = 3
	CategoryTool      Category = 4
)

func (c Category) Valid() bool {
	return c >= CategoryOutfit && c <= CategoryTool
}

func (c Category) String() string {
	switch c {
	case CategoryOutfit:
		return "outfit"
	case CategoryAccessory:
		return "accessory"
	case CategoryItem:
		return "item"
	case CategoryTool:
		return "tool"
	default:
		return "unknown"
	}
}

// Inventory holds the slot arrays of one character. Slot indices on the wire
// are 1-based; zero in a slot means empty.
type Inventory struct {
	CharacterID  int64
	Emotes       [constants.EmoteSlots]uint8
	Outfits      [constants.InventorySlots]uint16
	Accessories  [constants.InventorySlots]uint16
	Items        [constants.InventorySlots]uint16
	Tools        [constants.InventorySlots]uint16
	EquippedTool uint16
}

// Slot returns the item in the 1-based slot of a category.
func (inv *Inventory) Slot(cat Category, slot uint8) uint16 {
	if slot < 1 || slot > constants.InventorySlots {
		return 0
	}
	switch cat {
	case CategoryOutfit:
		return inv.Outfits[slot-1]
	case CategoryAccessory:
		return inv.Accessories[slot-1]
	case CategoryItem:
		return inv.Items[slot-1]
	case CategoryTool:
		return inv.Tools[slot-1]
	default:
		return 0
	}
}

// SetSlot stores an item id in the 1-based slot of a category.
func (inv *Inventory) SetSlot(cat Category, slot uint8, itemID uint16) {
	if slot < 1 || slot > constants.InventorySlots {
		return
	}
	switch cat {
	case CategoryOutfit:
		inv.Outfits[slot-1] = itemID
	case CategoryAccessory:
		inv.Accessories[slot-1] = itemID
	case CategoryItem:
		inv.Items[slot-1] = itemID
	case CategoryTool:
		inv.Tools[slot-1] = itemID
	}
}

// FreeSlot returns the first empty 1-based slot of a category, or 0 when the
// category is full.
func (inv *Inventory) FreeSlot(cat Category) uint8 {
	for i := uint8(1); i <= constants.InventorySlots; i++ {
		if inv.Slot(cat, i) == 0 {
			return i
		}
	}
	return 0
}
