package gameserver

import (
	"github.com/udisondev/slime2go/internal/crypto"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/world"
)

// Broadcaster fans one message out to many clients. The cipher re-keys per
// message, so the frame is encrypted once and cloned per recipient; each
// clone is a pool buffer the recipient's writePump returns on its own.
type Broadcaster struct {
	clients *ClientManager
	pool    *BytePool
}

// NewBroadcaster wires a broadcaster over the shared registry and pool.
func NewBroadcaster(clients *ClientManager, pool *BytePool) *Broadcaster {
	return &Broadcaster{clients: clients, pool: pool}
}

// ToPlayers sends w to every listed player, skipping the except id (0 skips
// nobody). The writer goes back to its pool either way. Sends are async;
// a slow recipient gets dropped, never blocks the sender.
func (b *Broadcaster) ToPlayers(players []*model.Player, except uint16, w *protocol.Writer) {
	defer w.Put()
	if len(players) == 0 {
		return
	}

	frame, err := b.pool.EncodeFrame(crypto.NewCipher(), w)
	if err != nil {
		return
	}
	defer b.pool.Put(frame)

	for _, p := range players {
		if p.ID == except {
			continue
		}
		c, ok := b.clients.ByPlayer(p.ID)
		if !ok {
			continue
		}
		_ = c.Send(b.pool.CloneFrame(frame))
	}
}

// ToRoom sends w to the current members of a room, skipping the except id.
func (b *Broadcaster) ToRoom(room *world.Room, except uint16, w *protocol.Writer) {
	b.ToPlayers(room.Players(), except, w)
}

// ToPlayer sends w to one player by runtime id.
func (b *Broadcaster) ToPlayer(playerID uint16, w *protocol.Writer) {
	c, ok := b.clients.ByPlayer(playerID)
	if !ok {
		w.Put()
		return
	}
	_ = c.SendMessage(w)
}

// ToAll sends w to every authenticated client. Used for server notices.
func (b *Broadcaster) ToAll(w *protocol.Writer) {
	defer w.Put()

	frame, err := b.pool.EncodeFrame(crypto.NewCipher(), w)
	if err != nil {
		return
	}
	defer b.pool.Put(frame)

	b.clients.ForEach(func(c *Client) {
		if c.State() != StateInGame {
			return
		}
		_ = c.Send(b.pool.CloneFrame(frame))
	})
}
