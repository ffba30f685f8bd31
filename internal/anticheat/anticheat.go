// Package anticheat watches movement for the exploits a modified client can
// actually pull off in this game: teleporting, sustained speed hacking and
// position spoofing.
package anticheat

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/udisondev/slime2go/internal/constants"
)

// Kind classifies a movement check.
type Kind int

const (
	// Clean means nothing suspicious.
	Clean Kind = iota
	// Suspicious means a violation was recorded but the threshold not reached.
	Suspicious
	// Cheating means the violation threshold was crossed, the caller flags
	// the player.
	Cheating
)

// Verdict is the outcome of one movement check.
type Verdict struct {
	Kind     Kind
	Reason   string
	Severity int
}

type position struct {
	x, y uint16
	at   time.Time
}

type history struct {
	positions  []position
	roomID     uint16
	violations []time.Time
	isWarping  bool
}

func (h *history) addViolation(now time.Time) {
	h.violations = append(h.violations, now)
	cutoff := now.Add(-constants.ViolationWindowSecs * time.Second)
	kept := h.violations[:0]
	for _, at := range h.violations {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	h.violations = kept
}

func (h *history) violationCount(now time.Time) int {
	cutoff := now.Add(-constants.ViolationWindowSecs * time.Second)
	n := 0
	for _, at := range h.violations {
		if at.After(cutoff) {
			n++
		}
	}
	return n
}

// Tracker keeps per-player movement history and flag counts.
type Tracker struct {
	mu      sync.Mutex
	players map[uint16]*history
	flagged map[uint16]int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		players: make(map[uint16]*history),
		flagged: make(map[uint16]int),
	}
}

// Init starts tracking a player at their spawn position.
func (t *Tracker) Init(playerID uint16, x, y, roomID uint16, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players[playerID] = &history{
		positions: []position{{x: x, y: y, at: now}},
		roomID:    roomID,
	}
}

// Remove drops all state of a player.
func (t *Tracker) Remove(playerID uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.players, playerID)
	delete(t.flagged, playerID)
}

// AllowWarp marks the next position change of a player as a legitimate
// teleport.
func (t *Tracker) AllowWarp(playerID uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.players[playerID]; ok {
		h.isWarping = true
	}
}

// SetRoom resets history on a room change.
func (t *Tracker) SetRoom(playerID uint16, roomID, x, y uint16, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok := t.players[playerID]; ok {
		h.roomID = roomID
		h.positions = []position{{x: x, y: y, at: now}}
		h.isWarping = false
	}
}

// CheckMovement analyzes one position update. On a Cheating verdict the
// player is flagged.
func (t *Tracker) CheckMovement(playerID uint16, x, y, roomID uint16, now time.Time) Verdict {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.players[playerID]
	if !ok {
		t.players[playerID] = &history{
			positions: []position{{x: x, y: y, at: now}},
			roomID:    roomID,
		}
		return Verdict{Kind: Clean}
	}

	v := h.update(x, y, roomID, now)
	if v.Kind == Cheating {
		t.flagged[playerID]++
	}
	return v
}

func (h *history) update(x, y, roomID uint16, now time.Time) Verdict {
	if roomID != h.roomID {
		h.roomID = roomID
		h.positions = []position{{x: x, y: y, at: now}}
		h.isWarping = false
		return Verdict{Kind: Clean}
	}

	if h.isWarping {
		h.positions = []position{{x: x, y: y, at: now}}
		h.isWarping = false
		return Verdict{Kind: Clean}
	}

	if len(h.positions) > 0 {
		last := h.positions[len(h.positions)-1]
		elapsed := now.Sub(last.at)

		dx := float64(x) - float64(last.x)
		dy := float64(y) - float64(last.y)
		distance := math.Sqrt(dx*dx + dy*dy)

		if distance > constants.MaxMovementDistance {
			elapsedSecs := math.Max(elapsed.Seconds(), 0.001)
			speed := distance / elapsedSecs

			// Large jumps can be lag. Impossible speed cannot.
			if speed > constants.MaxPlayerSpeed*10 {
				h.addViolation(now)
				reason := fmt.Sprintf("teleport: moved %.0f px in %.2fs (speed %.0f)", distance, elapsedSecs, speed)
				if h.violationCount(now) >= constants.ViolationThreshold {
					return Verdict{Kind: Cheating, Reason: reason}
				}
				return Verdict{Kind: Suspicious, Reason: reason, Severity: 3}
			}
		}

		// Sustained speed only means anything over a real interval.
		if elapsed > 100*time.Millisecond {
			speed := distance / elapsed.Seconds()
			if speed > constants.MaxPlayerSpeed*2 {
				h.addViolation(now)
				reason := fmt.Sprintf("speed hack: %.0f px/s (max %.0f)", speed, float64(constants.MaxPlayerSpeed))
				if h.violationCount(now) >= constants.ViolationThreshold {
					return Verdict{Kind: Cheating, Reason: reason}
				}
				return Verdict{Kind: Suspicious, Reason: reason, Severity: 2}
			}
		}
	}

	h.positions = append(h.positions, position{x: x, y: y, at: now})
	if len(h.positions) > 10 {
		h.positions = h.positions[1:]
	}
	return Verdict{Kind: Clean}
}

// FlagCount returns how many times a player crossed the violation threshold.
func (t *Tracker) FlagCount(playerID uint16) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flagged[playerID]
}

// ShouldKick reports whether the player accumulated enough flags to be
// disconnected.
func (t *Tracker) ShouldKick(playerID uint16) bool {
	return t.FlagCount(playerID) >= constants.FlagsBeforeKick
}

// ShouldBan reports whether the player earned a ban record.
func (t *Tracker) ShouldBan(playerID uint16) bool {
	return t.FlagCount(playerID) >= constants.FlagsBeforeBan
}

// ValidateDelta is the cheap pre-check run on every movement message before
// it reaches the world: the claimed displacement must fit the elapsed time,
// with a lag floor so ordinary jitter never rejects.
func ValidateDelta(oldX, oldY, newX, newY uint16, elapsed time.Duration) bool {
	dx := float64(newX) - float64(oldX)
	dy := float64(newY) - float64(oldY)
	distance := math.Sqrt(dx*dx + dy*dy)

	if distance <= constants.MovementLagFloor {
		return true
	}
	maxDistance := constants.MaxPlayerSpeed * elapsed.Seconds()
	if maxDistance < constants.MovementLagFloor {
		maxDistance = constants.MovementLagFloor
	}
	if maxDistance > constants.MaxMovementDistance {
		maxDistance = constants.MaxMovementDistance
	}
	return distance <= maxDistance
}
