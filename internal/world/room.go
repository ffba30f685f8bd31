package world

import (
	"errors"
	"sync"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/model"
)

var (
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyInRoom = errors.New("player already in room")
)

// GroundItem is an inventory item lying on the room floor.
type GroundItem struct {
	ID        uint32
	ItemID    uint16
	X         uint16
	Y         uint16
	DroppedBy int64 // character id, 0 for system drops
	ExpiresAt time.Time
}

// Collectible is a room-defined pickup that respawns after being taken.
type Collectible struct {
	ID        uint16
	ItemID    uint16
	X         uint16
	Y         uint16
	Available bool
	RespawnAt time.Time
}

// PlantStage tracks staged growth of a planted seed.
type PlantStage uint8

const (
	PlantStageFree PlantStage = iota
	PlantStageSeed
	PlantStageSprout
	PlantStageGrown
	PlantStageFruit
)

// PlantSpot is a farmable spot inside a room.
type PlantSpot struct {
	ID        uint8
	OwnerID   int64 // character id of the planter, 0 when free
	Stage     PlantStage
	SeedID    uint16
	NextStage time.Time
}

// Room holds everything that lives inside one screen of the world. All
// mutation happens under the room mutex; the onJoin/onLeave callbacks run
// while it is held so roster broadcasts observe a consistent membership.
type Room struct {
	ID uint16

	mu           sync.Mutex
	players      map[uint16]*model.Player
	dropped      map[uint32]*GroundItem
	collectibles map[uint16]*Collectible
	plantSpots   map[uint8]*PlantSpot
}

func newRoom(id uint16) *Room {
	return &Room{
		ID:           id,
		players:      make(map[uint16]*model.Player),
		dropped:      make(map[uint32]*GroundItem),
		collectibles: make(map[uint16]*Collectible),
		plantSpots:   make(map[uint8]*PlantSpot),
	}
}

// Join adds p to the room. onJoin, when non-nil, receives the other members
// under the room lock.
func (r *Room) Join(p *model.Player, onJoin func(others []*model.Player)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[p.ID]; ok {
		return ErrAlreadyInRoom
	}
	if len(r.players) >= constants.MaxPlayersPerRoom {
		return ErrRoomFull
	}
	others := r.othersLocked(p.ID)
	r.players[p.ID] = p
	if onJoin != nil {
		onJoin(others)
	}
	return nil
}

// Leave removes p from the room. onLeave, when non-nil, receives the
// remaining members under the room lock. Leaving a room the player is not in
// is a no-op.
func (r *Room) Leave(p *model.Player, onLeave func(others []*model.Player)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[p.ID]; !ok {
		return
	}
	delete(r.players, p.ID)
	if onLeave != nil {
		onLeave(r.othersLocked(p.ID))
	}
}

func (r *Room) othersLocked(except uint16) []*model.Player {
	others := make([]*model.Player, 0, len(r.players))
	for id, pl := range r.players {
		if id != except {
			others = append(others, pl)
		}
	}
	return others
}

// Players returns a snapshot of the current members.
func (r *Room) Players() []*model.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	return out
}

// Contains reports whether the player id is a member.
func (r *Room) Contains(playerID uint16) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[playerID]
	return ok
}

// Len returns the member count.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// AddDropped puts a ground item on the floor.
func (r *Room) AddDropped(item *GroundItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dropped[item.ID] = item
}

// TakeDropped removes a ground item. Exactly one of any number of concurrent
// callers gets ok=true.
func (r *Room) TakeDropped(id uint32) (*GroundItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.dropped[id]
	if !ok {
		return nil, false
	}
	delete(r.dropped, id)
	return item, true
}

// DroppedItems returns a snapshot of the floor.
func (r *Room) DroppedItems() []*GroundItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*GroundItem, 0, len(r.dropped))
	for _, it := range r.dropped {
		out = append(out, it)
	}
	return out
}

// sweepDropped removes expired floor items and returns their ids.
func (r *Room) sweepDropped(now time.Time) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []uint32
	for id, it := range r.dropped {
		if now.After(it.ExpiresAt) {
			delete(r.dropped, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// AddCollectible registers a collectible spawn point.
func (r *Room) AddCollectible(c *Collectible) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectibles[c.ID] = c
}

// TakeCollectible claims an available collectible and schedules its respawn.
func (r *Room) TakeCollectible(id uint16, now time.Time, respawn time.Duration) (*Collectible, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collectibles[id]
	if !ok || !c.Available {
		return nil, false
	}
	c.Available = false
	c.RespawnAt = now.Add(respawn)
	return c, true
}

// Collectibles returns a snapshot of all collectible spawns.
func (r *Room) Collectibles() []*Collectible {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Collectible, 0, len(r.collectibles))
	for _, c := range r.collectibles {
		snap := *c
		out = append(out, &snap)
	}
	return out
}

// respawnCollectibles flips due collectibles back to available.
func (r *Room) respawnCollectibles(now time.Time) []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var respawned []uint16
	for id, c := range r.collectibles {
		if !c.Available && !now.Before(c.RespawnAt) {
			c.Available = true
			respawned = append(respawned, id)
		}
	}
	return respawned
}

// Plant claims a free spot for a seed.
func (r *Room) Plant(spotID uint8, ownerID int64, seedID uint16, now time.Time, stage time.Duration) (*PlantSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spot, ok := r.plantSpots[spotID]
	if !ok {
		return nil, errors.New("no such plant spot")
	}
	if spot.Stage != PlantStageFree {
		return nil, errors.New("plant spot in use")
	}
	spot.OwnerID = ownerID
	spot.SeedID = seedID
	spot.Stage = PlantStageSeed
	spot.NextStage = now.Add(stage)
	planted := *spot
	return &planted, nil
}

// Harvest collects the fruit of a grown plant. Only the planter may harvest.
func (r *Room) Harvest(spotID uint8, ownerID int64) (*PlantSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spot, ok := r.plantSpots[spotID]
	if !ok {
		return nil, errors.New("no such plant spot")
	}
	if spot.Stage != PlantStageFruit {
		return nil, errors.New("plant has no fruit")
	}
	if spot.OwnerID != ownerID {
		return nil, errors.New("not the planter")
	}
	harvested := *spot
	spot.OwnerID = 0
	spot.SeedID = 0
	spot.Stage = PlantStageFree
	return &harvested, nil
}

// AddPlantSpot registers a farmable spot.
func (r *Room) AddPlantSpot(id uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plantSpots[id] = &PlantSpot{ID: id}
}

// FreePlantSpot returns the id of any free spot, or 0 when none.
func (r *Room) FreePlantSpot() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.plantSpots {
		if s.Stage == PlantStageFree {
			return id
		}
	}
	return 0
}

// PlantSpots returns a snapshot of all farmable spots.
func (r *Room) PlantSpots() []*PlantSpot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*PlantSpot, 0, len(r.plantSpots))
	for _, s := range r.plantSpots {
		snap := *s
		out = append(out, &snap)
	}
	return out
}

// growPlants advances due plants one stage and returns spots that changed.
func (r *Room) growPlants(now time.Time, stage time.Duration) []*PlantSpot {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed []*PlantSpot
	for _, s := range r.plantSpots {
		if s.Stage == PlantStageFree || s.Stage == PlantStageFruit {
			continue
		}
		if now.Before(s.NextStage) {
			continue
		}
		s.Stage++
		s.NextStage = now.Add(stage)
		snap := *s
		changed = append(changed, &snap)
	}
	return changed
}
