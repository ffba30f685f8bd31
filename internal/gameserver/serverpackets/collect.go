package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/world"
)

// CollectInfo lists the available collectibles of a room, sent on entry and
// when spawns come back.
type CollectInfo struct {
	Collectibles []*world.Collectible
}

// Write serializes the packet.
func (p *CollectInfo) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgCollectInfo)
	w.WriteU8(uint8(len(p.Collectibles)))
	for _, c := range p.Collectibles {
		w.WriteU8(uint8(c.ID))
		w.WriteU16(c.ItemID)
		w.WriteU16(c.X)
		w.WriteU16(c.Y)
	}
	return w
}

// CollectTaken tells the rest of the room a collectible was claimed.
type CollectTaken struct {
	ColID uint8
}

// Write serializes the packet.
func (p *CollectTaken) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgCollectTaken)
	w.WriteU8(p.ColID)
	return w
}
