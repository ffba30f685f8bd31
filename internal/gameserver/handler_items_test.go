package gameserver

import (
	"testing"

	"github.com/udisondev/slime2go/internal/model"
)

func TestDiscardRecordsCharacterOwner(t *testing.T) {
	h := newTestHandler(t)
	c := newTestClient(t, 1, 100)
	p := c.Player()
	p.SetRoomID(1, 400, 300)

	room, err := h.world.Room(1)
	if err != nil {
		t.Fatalf("Room: %v", err)
	}
	if err := room.Join(p, nil); err != nil {
		t.Fatalf("Join: %v", err)
	}
	p.UpdateInventory(func(inv *model.Inventory) {
		inv.SetSlot(model.CategoryItem, 1, 21)
	})

	body := []byte{1, 0x90, 0x01, 0x2C, 0x01} // slot 1 at x=400 y=300
	if err := h.handleDiscard(c, body); err != nil {
		t.Fatalf("handleDiscard: %v", err)
	}

	drops := room.DroppedItems()
	if len(drops) != 1 {
		t.Fatalf("room holds %d drops, want 1", len(drops))
	}
	if drops[0].DroppedBy != p.CharacterID {
		t.Errorf("DroppedBy = %d, want character id %d", drops[0].DroppedBy, p.CharacterID)
	}
	inv := p.Inventory()
	if got := inv.Slot(model.CategoryItem, 1); got != 0 {
		t.Errorf("slot 1 still holds item %d after discard", got)
	}
}
