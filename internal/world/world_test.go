package world

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/slime2go/internal/constants"
	"github.com/udisondev/slime2go/internal/model"
)

func testPlayer(w *World, name string) *model.Player {
	ch := &model.Character{
		Username: name,
		RoomID:   constants.SpawnRoomID,
		X:        constants.SpawnX,
		Y:        constants.SpawnY,
	}
	p := model.NewPlayer(0, ch, &model.Inventory{})
	w.AssignPlayerID(p)
	return p
}

func TestRoomLazyCreation(t *testing.T) {
	w := New()

	r, err := w.Room(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), r.ID)

	again, err := w.Room(5)
	require.NoError(t, err)
	assert.Same(t, r, again)

	_, err = w.Room(1001)
	assert.ErrorIs(t, err, ErrInvalidRoom)
}

func TestJoinLeaveBroadcastConsistency(t *testing.T) {
	w := New()
	r, err := w.Room(1)
	require.NoError(t, err)

	a := testPlayer(w, "a")
	b := testPlayer(w, "b")

	require.NoError(t, r.Join(a, func(others []*model.Player) {
		assert.Empty(t, others, "first joiner sees empty room")
	}))

	require.NoError(t, r.Join(b, func(others []*model.Player) {
		require.Len(t, others, 1)
		assert.Equal(t, a.ID, others[0].ID)
	}))

	assert.ErrorIs(t, r.Join(b, nil), ErrAlreadyInRoom)

	r.Leave(a, func(others []*model.Player) {
		require.Len(t, others, 1)
		assert.Equal(t, b.ID, others[0].ID)
	})
	assert.Equal(t, 1, r.Len())

	// leaving twice is inert
	r.Leave(a, func([]*model.Player) { t.Fatal("callback must not fire") })
}

func TestRoomCapacity(t *testing.T) {
	w := New()
	r, err := w.Room(2)
	require.NoError(t, err)

	for i := 0; i < constants.MaxPlayersPerRoom; i++ {
		require.NoError(t, r.Join(testPlayer(w, "p"), nil))
	}
	err = r.Join(testPlayer(w, "late"), nil)
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestMovePlayer(t *testing.T) {
	w := New()
	src, err := w.Room(1)
	require.NoError(t, err)

	p := testPlayer(w, "mover")
	p.SetRoomID(1, 10, 10)
	require.NoError(t, src.Join(p, nil))

	var joined, left bool
	err = w.MovePlayer(p, 2, 100, 50,
		func([]*model.Player) { left = true },
		func([]*model.Player) { joined = true })
	require.NoError(t, err)
	assert.True(t, joined)
	assert.True(t, left)

	assert.Equal(t, uint16(2), p.RoomID())
	x, y := p.Position()
	assert.Equal(t, uint16(100), x)
	assert.Equal(t, uint16(50), y)
	assert.False(t, src.Contains(p.ID))

	dst, _ := w.Room(2)
	assert.True(t, dst.Contains(p.ID))
}

func TestMovePlayerNeverInTwoRooms(t *testing.T) {
	w := New()
	src, _ := w.Room(1)
	dst, _ := w.Room(2)

	p := testPlayer(w, "mover")
	p.SetRoomID(1, 0, 0)
	require.NoError(t, src.Join(p, nil))

	// the origin is already vacated by the time the destination admits
	err := w.MovePlayer(p, 2, 0, 0,
		func([]*model.Player) {
			assert.False(t, dst.Contains(p.ID), "still in destination while leaving")
		},
		func([]*model.Player) {
			assert.False(t, src.Contains(p.ID), "still in origin while joining")
		})
	require.NoError(t, err)
}

func TestMovePlayerFullDestination(t *testing.T) {
	w := New()
	src, _ := w.Room(1)
	dst, _ := w.Room(2)
	for i := 0; i < constants.MaxPlayersPerRoom; i++ {
		require.NoError(t, dst.Join(testPlayer(w, "filler"), nil))
	}

	p := testPlayer(w, "mover")
	p.SetRoomID(1, 0, 0)
	require.NoError(t, src.Join(p, nil))

	err := w.MovePlayer(p, 2, 0, 0, nil, nil)
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.True(t, src.Contains(p.ID), "failed move leaves the player in place")
	assert.Equal(t, uint16(1), p.RoomID())
}

func TestContestedPickupSingleWinner(t *testing.T) {
	w := New()
	r, _ := w.Room(3)

	item := &GroundItem{
		ID:        w.NextDroppedID(),
		ItemID:    7,
		ExpiresAt: time.Now().Add(time.Minute),
	}
	r.AddDropped(item)

	const contenders = 16
	var wg sync.WaitGroup
	wins := make(chan *GroundItem, contenders)
	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, ok := r.TakeDropped(item.ID); ok {
				wins <- got
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1, "exactly one contender wins the pickup")
	assert.Empty(t, r.DroppedItems())
}

func TestDroppedItemExpiry(t *testing.T) {
	w := New()
	r, _ := w.Room(4)

	now := time.Now()
	r.AddDropped(&GroundItem{ID: 1, ItemID: 5, ExpiresAt: now.Add(-time.Second)})
	r.AddDropped(&GroundItem{ID: 2, ItemID: 6, ExpiresAt: now.Add(time.Hour)})

	res := w.Tick(now)
	require.Len(t, res.ExpiredDrops[4], 1)
	assert.Equal(t, uint32(1), res.ExpiredDrops[4][0])
	assert.Len(t, r.DroppedItems(), 1)
}

func TestCollectibleRespawn(t *testing.T) {
	w := New()
	r, _ := w.Room(5)
	r.AddCollectible(&Collectible{ID: 1, ItemID: 9, Available: true})

	now := time.Now()
	c, ok := r.TakeCollectible(1, now, w.CollectibleRespawn)
	require.True(t, ok)
	assert.Equal(t, uint16(9), c.ItemID)

	_, ok = r.TakeCollectible(1, now, w.CollectibleRespawn)
	assert.False(t, ok, "taken collectible is unavailable")

	res := w.Tick(now.Add(w.CollectibleRespawn + time.Second))
	require.Len(t, res.Respawned[5], 1)

	_, ok = r.TakeCollectible(1, now, w.CollectibleRespawn)
	assert.True(t, ok)
}

func TestPlantLifecycle(t *testing.T) {
	w := New()
	r, _ := w.Room(6)
	r.AddPlantSpot(1)

	now := time.Now()
	planted, err := r.Plant(1, 42, 3, now, w.PlantStageTime)
	require.NoError(t, err)
	assert.Zero(t, r.FreePlantSpot())

	// the returned spot is a copy, detached from what the growth sweep mutates
	planted.Stage = PlantStageFruit
	_, err = r.Harvest(1, 42)
	assert.Error(t, err, "room spot still a seed")
	assert.Equal(t, PlantStageSeed, r.PlantSpots()[0].Stage)

	_, err = r.Plant(1, 43, 3, now, w.PlantStageTime)
	assert.Error(t, err, "occupied spot rejects planting")

	// three stage ticks: seed → sprout → grown → fruit
	tick := now
	for range 3 {
		tick = tick.Add(w.PlantStageTime + time.Second)
		res := w.Tick(tick)
		require.Len(t, res.GrownPlants[6], 1)
	}

	_, err = r.Harvest(1, 43)
	assert.Error(t, err, "only the planter harvests")

	spot, err := r.Harvest(1, 42)
	require.NoError(t, err)
	assert.Equal(t, PlantStageFruit, spot.Stage)
	assert.Equal(t, uint8(1), r.FreePlantSpot())
}

func TestPlayerRegistry(t *testing.T) {
	w := New()
	p := testPlayer(w, "alice")
	require.NotZero(t, p.ID)

	got, ok := w.Player(p.ID)
	require.True(t, ok)
	assert.Same(t, p, got)

	byName, ok := w.PlayerByName("alice")
	require.True(t, ok)
	assert.Same(t, p, byName)

	w.RemovePlayer(p.ID)
	_, ok = w.Player(p.ID)
	assert.False(t, ok)
	assert.Zero(t, w.OnlineCount())
}
