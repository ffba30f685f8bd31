// Package world models the live game world: rooms, their occupants, items on
// the floor, collectibles and farmable spots. The world owns runtime player
// ids; persistent identity stays in the model package.
package world

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/model"
)

var ErrInvalidRoom = errors.New("invalid room id")

// World is the registry of rooms and online players. Rooms are created
// lazily on first visit.
type World struct {
	mu      sync.RWMutex
	rooms   map[uint16]*Room
	players map[uint16]*model.Player

	nextPlayerID  atomic.Uint32
	nextDroppedID atomic.Uint32

	// DroppedTTL is how long discarded items survive on the floor.
	DroppedTTL time.Duration
	// CollectibleRespawn is the delay before a taken collectible returns.
	CollectibleRespawn time.Duration
	// PlantStageTime is the delay between growth stages.
	PlantStageTime time.Duration
}

// New creates an empty world with default timers.
func New() *World {
	return &World{
		rooms:              make(map[uint16]*Room),
		players:            make(map[uint16]*model.Player),
		DroppedTTL:         constants.DroppedItemTTLSecs * time.Second,
		CollectibleRespawn: 30 * time.Second,
		PlantStageTime:     5 * time.Minute,
	}
}

// Room returns the room with the given id, creating it on first visit.
func (w *World) Room(id uint16) (*Room, error) {
	if id > constants.MaxRoomID {
		return nil, ErrInvalidRoom
	}
	w.mu.RLock()
	r, ok := w.rooms[id]
	w.mu.RUnlock()
	if ok {
		return r, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if r, ok = w.rooms[id]; ok {
		return r, nil
	}
	r = newRoom(id)
	w.rooms[id] = r
	return r, nil
}

// AssignPlayerID hands out the next runtime player id and registers p.
func (w *World) AssignPlayerID(p *model.Player) uint16 {
	id := uint16(w.nextPlayerID.Add(1))
	p.ID = id
	w.mu.Lock()
	w.players[id] = p
	w.mu.Unlock()
	return id
}

// RemovePlayer drops the runtime id registration.
func (w *World) RemovePlayer(id uint16) {
	w.mu.Lock()
	delete(w.players, id)
	w.mu.Unlock()
}

// Player resolves a runtime player id.
func (w *World) Player(id uint16) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[id]
	return p, ok
}

// PlayerByName resolves an online player by character name.
func (w *World) PlayerByName(name string) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.players {
		if p.Username == name {
			return p, true
		}
	}
	return nil, false
}

// PlayerByCharacter resolves an online player by persistent character id.
func (w *World) PlayerByCharacter(characterID int64) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.players {
		if p.CharacterID == characterID {
			return p, true
		}
	}
	return nil, false
}

// OnlineCount returns the number of registered players.
func (w *World) OnlineCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// NextDroppedID hands out a world-unique ground item id.
func (w *World) NextDroppedID() uint32 {
	return w.nextDroppedID.Add(1)
}

// MovePlayer atomically moves p between rooms. The leave callback fires in
// the old room, the join callback in the new one; capacity failure leaves
// the player where they were.
func (w *World) MovePlayer(p *model.Player, to uint16, x, y uint16,
	onLeave func(others []*model.Player), onJoin func(others []*model.Player)) error {

	dst, err := w.Room(to)
	if err != nil {
		return err
	}

	from, err := w.Room(p.RoomID())
	if err != nil {
		return err
	}

	// Leave the origin before joining so the player never occupies two
	// rooms at once. A full destination re-seats the player where they were.
	from.Leave(p, onLeave)
	if err := dst.Join(p, onJoin); err != nil {
		from.Join(p, nil)
		return err
	}
	p.SetRoomID(to, x, y)
	return nil
}

// TickResult carries everything one sweep changed, for broadcasting.
type TickResult struct {
	ExpiredDrops map[uint16][]uint32     // room id → dropped item ids
	Respawned    map[uint16][]uint16     // room id → collectible ids
	GrownPlants  map[uint16][]*PlantSpot // room id → changed spots
}

// Tick sweeps expired floor items, respawns collectibles and grows plants.
func (w *World) Tick(now time.Time) TickResult {
	w.mu.RLock()
	rooms := make([]*Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		rooms = append(rooms, r)
	}
	w.mu.RUnlock()

	res := TickResult{
		ExpiredDrops: make(map[uint16][]uint32),
		Respawned:    make(map[uint16][]uint16),
		GrownPlants:  make(map[uint16][]*PlantSpot),
	}
	for _, r := range rooms {
		if expired := r.sweepDropped(now); len(expired) > 0 {
			res.ExpiredDrops[r.ID] = expired
		}
		if back := r.respawnCollectibles(now); len(back) > 0 {
			res.Respawned[r.ID] = back
		}
		if grown := r.growPlants(now, w.PlantStageTime); len(grown) > 0 {
			res.GrownPlants[r.ID] = grown
		}
	}
	return res
}
