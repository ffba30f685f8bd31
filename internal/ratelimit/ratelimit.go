// Package ratelimit implements the per-action sliding-window limits every
// client action passes before its handler runs. Keys are opaque strings: the
// server keys authenticated actions by player id and pre-auth actions by
// remote address.
package ratelimit

import (
	"sync"
	"time"
)

// Action categorizes limited client activity.
type Action int

const (
	ActionChat Action = iota
	ActionMovement
	ActionUseItem
	ActionShopBuy
	ActionBank
	ActionLogin
	ActionRegister
	ActionWarp
	ActionMail
	ActionBbsPost
	ActionGeneric
)

func (a Action) String() string {
	switch a {
	case ActionChat:
		return "chat"
	case ActionMovement:
		return "movement"
	case ActionUseItem:
		return "use_item"
	case ActionShopBuy:
		return "shop_buy"
	case ActionBank:
		return "bank"
	case ActionLogin:
		return "login"
	case ActionRegister:
		return "register"
	case ActionWarp:
		return "warp"
	case ActionMail:
		return "mail"
	case ActionBbsPost:
		return "bbs_post"
	case ActionGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Config bounds one action category.
type Config struct {
	MaxActions int
	Window     time.Duration
	Cooldown   time.Duration
}

// DefaultConfigs returns the per-action limits the server ships with.
func DefaultConfigs() map[Action]Config {
	mk := func(max int, windowSecs, cooldownSecs int64) Config {
		return Config{
			MaxActions: max,
			Window:     time.Duration(windowSecs) * time.Second,
			Cooldown:   time.Duration(cooldownSecs) * time.Second,
		}
	}
	return map[Action]Config{
		ActionChat:     mk(10, 10, 5),
		ActionMovement: mk(60, 1, 1),
		ActionUseItem:  mk(5, 10, 3),
		ActionShopBuy:  mk(10, 60, 5),
		ActionBank:     mk(20, 60, 5),
		ActionLogin:    mk(5, 60, 30),
		ActionRegister: mk(3, 300, 60),
		ActionWarp:     mk(5, 30, 5),
		ActionMail:     mk(10, 60, 10),
		ActionBbsPost:  mk(5, 300, 30),
		ActionGeneric:  mk(30, 60, 5),
	}
}

// Outcome classifies one Check call.
type Outcome int

const (
	// Allowed means the action may proceed.
	Allowed Outcome = iota
	// Exceeded means this action tripped the limit and started a cooldown.
	Exceeded
	// InCooldown means a previous violation's cooldown is still running.
	InCooldown
)

// Result is the full answer of a Check call.
type Result struct {
	Outcome       Outcome
	RetryAfter    time.Duration
	Violations    int // lifetime violations of the key
	CurrentWindow int // actions recorded in the window, including this one when allowed
}

type bucket struct {
	actions       []time.Time
	cooldownUntil time.Time
}

type entry struct {
	buckets    map[Action]*bucket
	violations int
	lastSeen   time.Time
}

// Limiter tracks sliding windows per key and action.
type Limiter struct {
	mu      sync.Mutex
	configs map[Action]Config
	entries map[string]*entry
}

// New creates a limiter. Missing actions in configs fall back to the
// generic limit.
func New(configs map[Action]Config) *Limiter {
	if configs == nil {
		configs = DefaultConfigs()
	}
	return &Limiter{
		configs: configs,
		entries: make(map[string]*entry),
	}
}

func (l *Limiter) config(action Action) Config {
	if cfg, ok := l.configs[action]; ok {
		return cfg
	}
	return l.configs[ActionGeneric]
}

// Check records an attempted action and reports whether it may proceed.
func (l *Limiter) Check(key string, action Action, now time.Time) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{buckets: make(map[Action]*bucket)}
		l.entries[key] = e
	}
	e.lastSeen = now

	b, ok := e.buckets[action]
	if !ok {
		b = &bucket{}
		e.buckets[action] = b
	}

	cfg := l.config(action)

	if !b.cooldownUntil.IsZero() {
		if now.Before(b.cooldownUntil) {
			e.violations++
			return Result{
				Outcome:    InCooldown,
				RetryAfter: b.cooldownUntil.Sub(now),
				Violations: e.violations,
			}
		}
		b.cooldownUntil = time.Time{}
		b.actions = b.actions[:0]
	}

	cutoff := now.Add(-cfg.Window)
	kept := b.actions[:0]
	for _, at := range b.actions {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	b.actions = kept

	if len(b.actions) < cfg.MaxActions {
		b.actions = append(b.actions, now)
		return Result{
			Outcome:       Allowed,
			Violations:    e.violations,
			CurrentWindow: len(b.actions),
		}
	}

	b.cooldownUntil = now.Add(cfg.Cooldown)
	e.violations++
	return Result{
		Outcome:       Exceeded,
		RetryAfter:    cfg.Cooldown,
		Violations:    e.violations,
		CurrentWindow: len(b.actions),
	}
}

// Violations returns the lifetime violation count of a key.
func (l *Limiter) Violations(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[key]; ok {
		return e.violations
	}
	return 0
}

// Escalation thresholds over lifetime violations of one key.
const (
	warnThreshold = 10
	kickThreshold = 50
	banThreshold  = 100
)

// ShouldWarn reports whether the key accumulated enough violations to warn.
func (l *Limiter) ShouldWarn(key string) bool { return l.Violations(key) >= warnThreshold }

// ShouldKick reports whether the key should be disconnected.
func (l *Limiter) ShouldKick(key string) bool { return l.Violations(key) >= kickThreshold }

// ShouldBan reports whether the key earned a temporary ban record.
func (l *Limiter) ShouldBan(key string) bool { return l.Violations(key) >= banThreshold }

// Forget drops all state of a key. Called when a session ends.
func (l *Limiter) Forget(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Sweep drops keys idle longer than maxIdle. Returns how many were removed.
func (l *Limiter) Sweep(now time.Time, maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > maxIdle {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}
