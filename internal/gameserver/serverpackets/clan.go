package serverpackets

import (
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/protocol"
)

// Clan info response types.
const (
	ClanInfoSelfJoined = 1
	ClanInfoTag        = 2
	ClanInfoMemberList = 4
	ClanInfoLeft       = 6
)

// ClanCreateFail rejects a clan creation with an error code.
type ClanCreateFail struct {
	Code uint8
}

// Write serializes the packet.
func (p *ClanCreateFail) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgClanCreate)
	w.WriteU8(p.Code)
	return w
}

// ClanSelfJoined tells a player they are now in a clan.
type ClanSelfJoined struct {
	ClanID   uint16
	IsLeader bool
	HasBase  bool
}

// Write serializes the packet.
func (p *ClanSelfJoined) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgClanInfo)
	w.WriteU8(ClanInfoSelfJoined)
	w.WriteU16(p.ClanID)
	if p.IsLeader {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
	if p.HasBase {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
	return w
}

// ClanTag broadcasts a player's clan membership. ClanID 0 means clanless.
type ClanTag struct {
	PlayerID uint16
	ClanID   uint16
}

// Write serializes the packet.
func (p *ClanTag) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgClanInfo)
	w.WriteU8(ClanInfoTag)
	w.WriteU16(p.PlayerID)
	w.WriteU16(p.ClanID)
	return w
}

// ClanMemberList answers a member list request, leader first.
type ClanMemberList struct {
	MaxMembers uint8
	LeaderID   uint32
	Members    []model.ClanMember
}

// Write serializes the packet.
func (p *ClanMemberList) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgClanInfo)
	w.WriteU8(ClanInfoMemberList)
	w.WriteU8(p.MaxMembers)
	w.WriteU8(uint8(len(p.Members)))
	w.WriteU32(p.LeaderID)
	for _, m := range p.Members {
		w.WriteU32(uint32(m.CharacterID))
		w.WriteString(m.Username)
	}
	return w
}

// ClanLeft tells a player they are no longer in a clan: they left, were
// kicked, or the clan dissolved.
type ClanLeft struct{}

// Write serializes the packet.
func (p *ClanLeft) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgClanInfo)
	w.WriteU8(ClanInfoLeft)
	return w
}

// ClanInviteOffer delivers a clan invitation to its target.
type ClanInviteOffer struct {
	InviterPID uint16
	ClanName   string
}

// Write serializes the packet.
func (p *ClanInviteOffer) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgClanInvite)
	w.WriteU16(p.InviterPID)
	w.WriteString(p.ClanName)
	return w
}
