package gameserver

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"time"

	"github.com/udisondev/slime2go/internal/crypto"
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/testutil"
)

func TestClientSendMessage(t *testing.T) {
	clientEnd, serverEnd := testutil.PipeConn(t)

	c, err := NewClient(serverEnd, NewBytePool(64), 8, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	w := protocol.GetWriter(protocol.MsgPing)
	w.WriteU8(7)
	if err := c.SendMessage(w); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	header := make([]byte, 2)
	if _, err := io.ReadFull(clientEnd, header); err != nil {
		t.Fatalf("reading length header: %v", err)
	}
	payload := make([]byte, binary.LittleEndian.Uint16(header))
	if _, err := io.ReadFull(clientEnd, payload); err != nil {
		t.Fatalf("reading payload: %v", err)
	}

	// Undo the server→client keystream the way the live client does.
	if err := crypto.NewCipher().Encrypt(payload); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	want := []byte{byte(protocol.MsgPing), 0, 7}
	if !bytes.Equal(payload, want) {
		t.Errorf("payload = %x, want %x", payload, want)
	}
}

func TestClientSendAfterClose(t *testing.T) {
	c, err := NewClient(testutil.NewMockConn(), NewBytePool(64), 8, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.CloseAsync()
	if !c.Closed() {
		t.Fatal("Closed() = false after CloseAsync")
	}
	if err := c.Send([]byte{0, 0}); err == nil {
		t.Error("Send succeeded on a closed client")
	}
}

func TestClientSendQueueFullDisconnects(t *testing.T) {
	// The pipe blocks writes until the peer reads, so frames pile up.
	_, serverEnd := testutil.PipeConn(t)
	c, err := NewClient(serverEnd, NewBytePool(64), 1, time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer c.Close()

	var sendErr error
	for range 10 {
		if sendErr = c.Send([]byte{1, 0, 9}); sendErr != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if sendErr == nil {
		t.Fatal("Send never failed with a stalled peer")
	}
	if !c.Closed() {
		t.Error("slow client was not disconnected")
	}
}

func TestClientIdentity(t *testing.T) {
	c := newTestClient(t, 42, 7)
	if c.AccountID() != 42 {
		t.Errorf("AccountID() = %d, want 42", c.AccountID())
	}
	if p := c.Player(); p == nil || p.ID != 7 {
		t.Errorf("Player() = %v, want player 7", p)
	}
	if c.Device() != "dev" {
		t.Errorf("Device() = %q, want dev", c.Device())
	}
}
