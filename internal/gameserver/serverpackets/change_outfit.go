package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// ChangeOutfit broadcasts a sprite change. Msg selects the anchor: the
// ChangeOutfit, ChangeAcc1 and ChangeAcc2 ids share this body.
type ChangeOutfit struct {
	Msg      protocol.MsgType
	PlayerID uint16
	SpriteID uint16
}

// Write serializes the packet.
func (p *ChangeOutfit) Write() *protocol.Writer {
	w := protocol.GetWriter(p.Msg)
	w.WriteU16(p.PlayerID)
	w.WriteU16(p.SpriteID)
	return w
}
