package serverpackets

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/udisondev/slime2go/internal/protocol"
)

// body strips the message id prefix and asserts it matches want.
func body(t *testing.T, w *protocol.Writer, want protocol.MsgType) []byte {
	t.Helper()
	defer w.Put()
	raw := w.Bytes()
	if len(raw) < 2 {
		t.Fatalf("payload too short: %x", raw)
	}
	if got := protocol.MsgType(binary.LittleEndian.Uint16(raw)); got != want {
		t.Fatalf("message id = %d, want %d", got, want)
	}
	out := make([]byte, len(raw)-2)
	copy(out, raw[2:])
	return out
}

func TestNewPlayerCase1Layout(t *testing.T) {
	p := &NewPlayer{
		X: 385, Y: 71, PlayerID: 5, RoomID: 32,
		Username: "bob", BodyID: 1, Acs1ID: 2, Acs2ID: 3,
	}
	got := body(t, p.WriteCase1(), protocol.MsgNewPlayer)

	// Coordinates come before the player id in this announcement.
	want := []byte{
		1,
		0x81, 0x01, // x 385
		0x47, 0x00, // y 71
		5, 0,
		32, 0,
		'b', 'o', 'b', 0,
		1, 0,
		2, 0,
		3, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("case 1 = %x, want %x", got, want)
	}
}

func TestNewPlayerRosterLayout(t *testing.T) {
	p := &NewPlayer{X: 10, Y: 20, PlayerID: 5, Username: "bob", BodyID: 1}
	got := body(t, p.WriteRoster(), protocol.MsgNewPlayer)

	// The roster entry has no case byte and leads with the player id.
	want := []byte{
		5, 0,
		'b', 'o', 'b', 0,
		10, 0,
		20, 0,
		1, 0,
		0, 0,
		0, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("roster = %x, want %x", got, want)
	}
}

func TestWarpPackets(t *testing.T) {
	depart := body(t, (&WarpDepart{PlayerID: 7}).Write(), protocol.MsgWarp)
	if !bytes.Equal(depart, []byte{7, 0, 2}) {
		t.Errorf("depart = %x", depart)
	}

	arrive := body(t, (&WarpArrive{PlayerID: 7, X: 100, Y: 50}).Write(), protocol.MsgWarp)
	if !bytes.Equal(arrive, []byte{7, 0, 1, 100, 0, 50, 0}) {
		t.Errorf("arrive = %x", arrive)
	}
}

func TestBankPackets(t *testing.T) {
	res := body(t, (&BankResult{Case: BankDepositOK, Points: 500, Bank: 1500}).Write(), protocol.MsgBankProcess)
	want := []byte{BankDepositOK, 0xF4, 0x01, 0x00, 0x00, 0xDC, 0x05, 0x00, 0x00}
	if !bytes.Equal(res, want) {
		t.Errorf("result = %x, want %x", res, want)
	}

	tr := body(t, (&BankTransferResult{Bank: 9}).Write(), protocol.MsgBankProcess)
	if !bytes.Equal(tr, []byte{BankTransferOK, 9, 0, 0, 0}) {
		t.Errorf("transfer = %x", tr)
	}

	miss := body(t, (&BankReceiverMissing{}).Write(), protocol.MsgBankProcess)
	if !bytes.Equal(miss, []byte{BankNoReceiver}) {
		t.Errorf("missing = %x", miss)
	}
}

func TestRoomShopInfoSingleEntryNamesSlot(t *testing.T) {
	single := &RoomShopInfo{Entries: []ShopEntry{
		{SlotID: 2, Category: 3, Price: 250, Stock: 5, ItemID: 33},
	}}
	got := body(t, single.Write(), protocol.MsgRoomShopInfo)
	want := []byte{1, 2, 3, 0xFA, 0x00, 5, 33, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("single = %x, want %x", got, want)
	}
}

func TestRoomShopInfoListingOmitsSlots(t *testing.T) {
	listing := &RoomShopInfo{Entries: []ShopEntry{
		{SlotID: 1, Category: 3, Price: 10, Stock: 1, ItemID: 5},
		{SlotID: 2, Category: 3, Price: 20, Stock: 1, ItemID: 6},
	}}
	got := body(t, listing.Write(), protocol.MsgRoomShopInfo)
	want := []byte{
		2,
		3, 10, 0, 1, 5, 0,
		3, 20, 0, 1, 6, 0,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("listing = %x, want %x", got, want)
	}
}

func TestShopBuyFailConditionalPosition(t *testing.T) {
	stock := body(t, (&ShopBuyFail{Case: ShopFailOutOfStock, PosID: 3}).Write(), protocol.MsgShopBuyFail)
	if !bytes.Equal(stock, []byte{ShopFailOutOfStock, 3}) {
		t.Errorf("out of stock = %x", stock)
	}

	points := body(t, (&ShopBuyFail{Case: ShopFailNoPoints, PosID: 3}).Write(), protocol.MsgShopBuyFail)
	if !bytes.Equal(points, []byte{ShopFailNoPoints}) {
		t.Errorf("no points = %x", points)
	}
}
