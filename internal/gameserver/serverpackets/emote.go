package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
)

// Emote plays an emote animation over a player.
type Emote struct {
	PlayerID uint16
	EmoteID  uint8
}

// Write serializes the packet.
func (p *Emote) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgEmote)
	w.WriteU16(p.PlayerID)
	w.WriteU8(p.EmoteID)
	return w
}
