package anticheat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalMovementIsClean(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 100, 100, 1, now)

	// 150 px/s, well under the cap
	for i := 1; i <= 10; i++ {
		at := now.Add(time.Duration(i) * 200 * time.Millisecond)
		v := tr.CheckMovement(1, uint16(100+i*30), 100, 1, at)
		assert.Equal(t, Clean, v.Kind, "step %d", i)
	}
}

func TestTeleportDetection(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 100, 100, 1, now)

	// 4000 px in 10 ms is far beyond any lag allowance
	v := tr.CheckMovement(1, 4100, 100, 1, now.Add(10*time.Millisecond))
	assert.Equal(t, Suspicious, v.Kind)
	assert.Contains(t, v.Reason, "teleport")
}

func TestTeleportEscalatesToCheating(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 0, 0, 1, now)

	// Rejected updates never advance the baseline, every attempt measures
	// against the spawn position.
	var last Verdict
	for i := 1; i <= 5; i++ {
		at := now.Add(time.Duration(i) * 20 * time.Millisecond)
		last = tr.CheckMovement(1, 4000, 0, 1, at)
	}
	assert.Equal(t, Cheating, last.Kind)
	assert.Equal(t, 1, tr.FlagCount(1))
}

func TestSpeedHackDetection(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 0, 0, 1, now)

	// 500 px in 0.5s sustained = 1000 px/s, over twice the cap
	v := tr.CheckMovement(1, 500, 0, 1, now.Add(500*time.Millisecond))
	assert.Equal(t, Suspicious, v.Kind)
	assert.Contains(t, v.Reason, "speed hack")
}

func TestWarpAllowance(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 100, 100, 1, now)

	tr.AllowWarp(1)
	v := tr.CheckMovement(1, 4500, 2000, 1, now.Add(10*time.Millisecond))
	assert.Equal(t, Clean, v.Kind, "declared warp is not a teleport")

	// allowance is single-use
	v = tr.CheckMovement(1, 100, 100, 1, now.Add(20*time.Millisecond))
	assert.Equal(t, Suspicious, v.Kind)
}

func TestRoomChangeResetsHistory(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 100, 100, 1, now)

	v := tr.CheckMovement(1, 4500, 2000, 2, now.Add(10*time.Millisecond))
	assert.Equal(t, Clean, v.Kind, "new room, new baseline")
}

func TestKickAndBanThresholds(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 0, 0, 1, now)

	cheatOnce := func(start time.Time) {
		// settle the baseline with a slow, clean move first
		tr.CheckMovement(1, 0, 0, 1, start)
		for i := 1; i <= 5; i++ {
			tr.CheckMovement(1, 4000, 0, 1, start.Add(time.Duration(i)*20*time.Millisecond))
		}
	}

	at := now
	for i := 0; i < 3; i++ {
		cheatOnce(at)
		at = at.Add(2 * time.Minute) // outside the violation window
	}
	require.GreaterOrEqual(t, tr.FlagCount(1), 3)
	assert.True(t, tr.ShouldKick(1))
	assert.False(t, tr.ShouldBan(1))

	for i := 0; i < 7; i++ {
		cheatOnce(at)
		at = at.Add(2 * time.Minute)
	}
	assert.True(t, tr.ShouldBan(1))
}

func TestRemoveClearsState(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Init(1, 0, 0, 1, now)
	tr.CheckMovement(1, 4000, 0, 1, now.Add(10*time.Millisecond))

	tr.Remove(1)
	assert.Zero(t, tr.FlagCount(1))
}

func TestValidateDelta(t *testing.T) {
	tests := []struct {
		name    string
		dx      uint16
		elapsed time.Duration
		ok      bool
	}{
		{"small move always passes", 40, time.Millisecond, true},
		{"normal speed", 150, 500 * time.Millisecond, true},
		{"too far for elapsed time", 400, 100 * time.Millisecond, false},
		{"lag floor covers jitter", 50, 0, true},
		{"over the hard cap", 700, 10 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, ValidateDelta(100, 100, 100+tt.dx, 100, tt.elapsed))
		})
	}
}
