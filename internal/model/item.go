package model

// ItemKind groups item ids by server-side behavior. The ids and grouping
// mirror the client's item database, which is why the ranges look arbitrary.
type ItemKind uint8

const (
	ItemGeneric ItemKind = iota
	ItemWarpWing
	ItemVisualEffect // smokebombs, applebombs, gum
	ItemBubbles
	ItemSlimebag
	ItemChickenMine
	ItemSeed
	ItemTreeBoost // fairies and pinwheels, applied to a planted tree
	ItemSoundmaker
	ItemMaterial
	ItemCannonKit
	ItemLuckyCoin
	ItemSoda
	ItemProofStone // conquest proofs, consumed by clan founding
)

const (
	ItemIDWarpWing    = 1
	ItemIDSlimebag50  = 5
	ItemIDSlimebag200 = 6
	ItemIDSlimebag500 = 7
	ItemIDSimpleSeed  = 9
	ItemIDBlueSeed    = 24
	ItemIDJuicyBango  = 25

	ItemIDProofOfNature = 51
	ItemIDProofOfEarth  = 52
)

// ClanProofItems are consumed alongside the point cost when founding a clan.
var ClanProofItems = []uint16{ItemIDProofOfNature, ItemIDProofOfEarth}

// KindOf classifies an item id. Unknown ids come back ItemGeneric.
func KindOf(itemID uint16) ItemKind {
	switch itemID {
	case ItemIDWarpWing:
		return ItemWarpWing
	case 2, 3:
		return ItemVisualEffect
	case 4:
		return ItemBubbles
	case ItemIDSlimebag50, ItemIDSlimebag200, ItemIDSlimebag500:
		return ItemSlimebag
	case 8:
		return ItemChickenMine
	case ItemIDSimpleSeed, ItemIDBlueSeed:
		return ItemSeed
	case 10, 11, 12, 13:
		return ItemTreeBoost
	case 26:
		return ItemCannonKit
	case 33:
		return ItemLuckyCoin
	}
	switch {
	case itemID >= 14 && itemID <= 19:
		return ItemSoundmaker
	case itemID >= 27 && itemID <= 32:
		return ItemVisualEffect
	case itemID >= 34 && itemID <= 38:
		return ItemSoda
	case itemID >= 51 && itemID <= 56:
		return ItemProofStone
	case itemID >= 20 && itemID <= 22, itemID == 25,
		itemID >= 39 && itemID <= 50, itemID >= 57 && itemID <= 61:
		return ItemMaterial
	}
	return ItemGeneric
}

// SlimebagValue is the point payout of a slimebag, 0 for anything else.
func SlimebagValue(itemID uint16) uint32 {
	switch itemID {
	case ItemIDSlimebag50:
		return 50
	case ItemIDSlimebag200:
		return 200
	case ItemIDSlimebag500:
		return 500
	}
	return 0
}

// FruitOf maps a planted seed to the fruit a given slot yields. Basic seeds
// grow more basic seeds; blue seeds yield bangos with a blue seed in the
// middle slot.
func FruitOf(seedID uint16, fruitSlot uint8) uint16 {
	switch seedID {
	case ItemIDBlueSeed:
		if fruitSlot == 2 {
			return ItemIDBlueSeed
		}
		return ItemIDJuicyBango
	default:
		return ItemIDSimpleSeed
	}
}

// CanDiscard reports whether an item may be dropped on the floor. Bug Leg
// (48) is quest-bound and stays put.
func CanDiscard(itemID uint16) bool {
	return itemID >= 1 && itemID <= 61 && itemID != 48
}
