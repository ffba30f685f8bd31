package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementWindow(t *testing.T) {
	l := New(nil)
	now := time.Now()

	// 60 updates inside one second pass, the 61st is rejected
	for i := 0; i < 60; i++ {
		res := l.Check("p:1", ActionMovement, now.Add(time.Duration(i)*15*time.Millisecond))
		require.Equal(t, Allowed, res.Outcome, "update %d", i+1)
	}
	res := l.Check("p:1", ActionMovement, now.Add(950*time.Millisecond))
	assert.Equal(t, Exceeded, res.Outcome)
	assert.Equal(t, 1, res.Violations)
}

func TestWindowSlides(t *testing.T) {
	l := New(map[Action]Config{
		ActionGeneric: {MaxActions: 2, Window: time.Second, Cooldown: time.Second},
	})
	now := time.Now()

	assert.Equal(t, Allowed, l.Check("k", ActionGeneric, now).Outcome)
	assert.Equal(t, Allowed, l.Check("k", ActionGeneric, now.Add(100*time.Millisecond)).Outcome)

	// both entries aged out of the window
	assert.Equal(t, Allowed, l.Check("k", ActionGeneric, now.Add(1200*time.Millisecond)).Outcome)
}

func TestCooldown(t *testing.T) {
	l := New(map[Action]Config{
		ActionChat:    {MaxActions: 1, Window: 10 * time.Second, Cooldown: 5 * time.Second},
		ActionGeneric: {MaxActions: 100, Window: time.Second, Cooldown: time.Second},
	})
	now := time.Now()

	require.Equal(t, Allowed, l.Check("k", ActionChat, now).Outcome)

	res := l.Check("k", ActionChat, now.Add(time.Second))
	require.Equal(t, Exceeded, res.Outcome)
	assert.Equal(t, 5*time.Second, res.RetryAfter)

	res = l.Check("k", ActionChat, now.Add(3*time.Second))
	assert.Equal(t, InCooldown, res.Outcome)
	assert.InDelta(t, (3 * time.Second).Seconds(), res.RetryAfter.Seconds(), 0.01)

	// cooldown elapsed, window restarts clean
	res = l.Check("k", ActionChat, now.Add(7*time.Second))
	assert.Equal(t, Allowed, res.Outcome)
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(map[Action]Config{
		ActionGeneric: {MaxActions: 1, Window: time.Minute, Cooldown: time.Minute},
	})
	now := time.Now()

	assert.Equal(t, Allowed, l.Check("a", ActionGeneric, now).Outcome)
	assert.Equal(t, Allowed, l.Check("b", ActionGeneric, now).Outcome)
	assert.Equal(t, Exceeded, l.Check("a", ActionGeneric, now).Outcome)
}

func TestActionsAreIndependent(t *testing.T) {
	l := New(nil)
	now := time.Now()

	for i := 0; i < 10; i++ {
		require.Equal(t, Allowed, l.Check("k", ActionChat, now).Outcome)
	}
	require.Equal(t, Exceeded, l.Check("k", ActionChat, now).Outcome)

	// chat cooldown does not block movement
	assert.Equal(t, Allowed, l.Check("k", ActionMovement, now).Outcome)
}

func TestEscalation(t *testing.T) {
	l := New(map[Action]Config{
		ActionGeneric: {MaxActions: 0, Window: time.Second, Cooldown: 0},
	})
	now := time.Now()

	trip := func(n int) {
		for i := 0; i < n; i++ {
			l.Check("k", ActionGeneric, now.Add(time.Duration(i)*2*time.Second))
		}
	}

	trip(9)
	assert.False(t, l.ShouldWarn("k"))
	trip(1)
	assert.True(t, l.ShouldWarn("k"))
	assert.False(t, l.ShouldKick("k"))
	trip(40)
	assert.True(t, l.ShouldKick("k"))
	assert.False(t, l.ShouldBan("k"))
	trip(50)
	assert.True(t, l.ShouldBan("k"))
}

func TestForgetAndSweep(t *testing.T) {
	l := New(nil)
	now := time.Now()

	for i := 0; i < 20; i++ {
		l.Check(fmt.Sprintf("k%d", i), ActionGeneric, now)
	}
	l.Forget("k0")
	assert.Zero(t, l.Violations("k0"))

	removed := l.Sweep(now.Add(time.Hour), 30*time.Minute)
	assert.Equal(t, 19, removed)
}
