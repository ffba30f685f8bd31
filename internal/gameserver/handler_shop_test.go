package gameserver

import (
	"testing"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/db"
)

func TestWithinShopRange(t *testing.T) {
	tests := []struct {
		name           string
		px, py, ax, ay uint16
		want           bool
	}{
		{"at the anchor", 100, 100, 100, 100, true},
		{"just inside", 100 + constants.MaxShopDistance, 100, 100, 100, true},
		{"just outside", 100 + constants.MaxShopDistance + 1, 100, 100, 100, false},
		{"diagonal outside", 100 + constants.MaxShopDistance, 100 + constants.MaxShopDistance, 100, 100, false},
		{"across the room", 4000, 2000, 100, 100, false},
		{"unplaced position sells anywhere", 4000, 2000, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withinShopRange(tt.px, tt.py, tt.ax, tt.ay); got != tt.want {
				t.Errorf("withinShopRange(%d,%d, %d,%d) = %v, want %v",
					tt.px, tt.py, tt.ax, tt.ay, got, tt.want)
			}
		})
	}
}

func TestShopInfoPacketStockClamp(t *testing.T) {
	items := []db.ShopItem{
		{SlotID: 1, Category: 3, Price: 10, ItemID: 5},
		{SlotID: 2, Category: 3, Price: 10, ItemID: 6, IsLimited: true, Stock: 0},
		{SlotID: 3, Category: 3, Price: 10, ItemID: 7, IsLimited: true, Stock: 1000},
	}
	pkt := shopInfoPacket(items)
	if pkt.Entries[0].Stock != 1 {
		t.Errorf("unlimited stock = %d, want 1", pkt.Entries[0].Stock)
	}
	if pkt.Entries[1].Stock != 0 {
		t.Errorf("sold out stock = %d, want 0", pkt.Entries[1].Stock)
	}
	if pkt.Entries[2].Stock != 255 {
		t.Errorf("clamped stock = %d, want 255", pkt.Entries[2].Stock)
	}
}
