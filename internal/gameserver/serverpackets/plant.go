package serverpackets

import (
	"github.com/udisondev/slime2go/internal/protocol"
	"github.com/udisondev/slime2go/internal/world"
)

// PlantSpotUsed announces a spot being planted or, on room entry, an
// occupied spot's current state.
type PlantSpotUsed struct {
	SpotID   uint8
	PlayerID uint16
	SeedID   uint16
	Stage    uint8
	Wheel    uint8
	Fairies  uint8
}

// Write serializes the packet.
func (p *PlantSpotUsed) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPlantSpotUsed)
	w.WriteU8(p.SpotID)
	w.WriteU16(p.PlayerID)
	w.WriteU16(p.SeedID)
	w.WriteU8(p.Stage)
	w.WriteU8(p.Wheel)
	w.WriteU8(p.Fairies)
	return w
}

// PlantSpotFree announces a spot becoming free.
type PlantSpotFree struct {
	SpotID uint8
}

// Write serializes the packet.
func (p *PlantSpotFree) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPlantSpotFree)
	w.WriteU8(p.SpotID)
	return w
}

// PlantGrow advances a plant to a new visual stage.
type PlantGrow struct {
	SpotID uint8
	Stage  uint8
}

// Write serializes the packet.
func (p *PlantGrow) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPlantGrow)
	w.WriteU8(p.SpotID)
	w.WriteU8(p.Stage)
	return w
}

// PlantHasFruit shows the fruit of a fully grown plant.
type PlantHasFruit struct {
	SpotID uint8
	Fruit1 uint16
	Fruit2 uint16
	Fruit3 uint16
}

// Write serializes the packet.
func (p *PlantHasFruit) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPlantHasFruit)
	w.WriteU8(p.SpotID)
	w.WriteU16(p.Fruit1)
	w.WriteU16(p.Fruit2)
	w.WriteU16(p.Fruit3)
	return w
}

// PlantFruitTaken tells the room a fruit was harvested.
type PlantFruitTaken struct {
	SpotID    uint8
	FruitSlot uint8
}

// Write serializes the packet.
func (p *PlantFruitTaken) Write() *protocol.Writer {
	w := protocol.GetWriter(protocol.MsgPlantGetFruit)
	w.WriteU8(p.SpotID)
	w.WriteU8(p.FruitSlot)
	return w
}

// TreePlanted bumps the client-side planting counter.
type TreePlanted struct{}

// Write serializes the packet.
func (p *TreePlanted) Write() *protocol.Writer {
	return protocol.GetWriter(protocol.MsgTreePlanted)
}

// NewPlantSpotUsed snapshots an occupied spot for a room-entry announcement.
func NewPlantSpotUsed(s *world.PlantSpot, playerID uint16) *PlantSpotUsed {
	return &PlantSpotUsed{
		SpotID:   s.ID,
		PlayerID: playerID,
		SeedID:   s.SeedID,
		Stage:    uint8(s.Stage),
	}
}
