package gameserver

import (
	"context"
	"time"

	"github.com/udisondev/slime2go/internal/gameserver/serverpackets"
	"github.com/udisondev/slime2go/internal/model"
	"github.com/udisondev/slime2go/internal/world"
)

// TickWorld runs one world sweep and announces its results to the affected
// rooms. Expired floor items need no packet, the client despawns them on
// its own timer.
func (h *Handler) TickWorld(now time.Time) {
	res := h.world.Tick(now)

	for roomID := range res.Respawned {
		room, err := h.world.Room(roomID)
		if err != nil {
			continue
		}
		available := make([]*world.Collectible, 0)
		for _, col := range room.Collectibles() {
			if col.Available {
				available = append(available, col)
			}
		}
		pkt := serverpackets.CollectInfo{Collectibles: available}
		h.broadcast.ToRoom(room, 0, pkt.Write())
	}

	for roomID, spots := range res.GrownPlants {
		room, err := h.world.Room(roomID)
		if err != nil {
			continue
		}
		for _, s := range spots {
			if s.Stage == world.PlantStageFruit {
				pkt := serverpackets.PlantHasFruit{
					SpotID: s.ID,
					Fruit1: model.FruitOf(s.SeedID, 1),
					Fruit2: model.FruitOf(s.SeedID, 2),
					Fruit3: model.FruitOf(s.SeedID, 3),
				}
				h.broadcast.ToRoom(room, 0, pkt.Write())
				continue
			}
			pkt := serverpackets.PlantGrow{SpotID: s.ID, Stage: uint8(s.Stage)}
			h.broadcast.ToRoom(room, 0, pkt.Write())
		}
	}
}

// SweepLimiter drops rate limit state idle for longer than maxIdle.
func (h *Handler) SweepLimiter(now time.Time, maxIdle time.Duration) {
	h.limiter.Sweep(now, maxIdle)
}

// Shutdown notifies every connected client the server is going down and
// flushes all characters.
func (h *Handler) Shutdown(ctx context.Context) {
	h.broadcast.ToAll((&serverpackets.ServerClose{}).Write())
	h.SaveAll(ctx)
}
