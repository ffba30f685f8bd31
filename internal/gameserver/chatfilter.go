package gameserver

import (
	"strings"
	"sync"
	"time"
)

// blockedWords are masked out of chat before broadcasting. Matching is
// case-insensitive and substring-based, which is crude but matches what the
// live client expects.
var blockedWords = []string{
	"fuck",
	"shit",
	"bitch",
	"cunt",
	"nigger",
	"faggot",
}

// repeatWindow is how long an identical chat line stays throttled.
const repeatWindow = 3 * time.Second

type lastChat struct {
	message string
	at      time.Time
}

// chatBook throttles repeated chat lines per player.
type chatBook struct {
	mu   sync.Mutex
	last map[uint16]lastChat
}

func newChatBook() *chatBook {
	return &chatBook{last: make(map[uint16]lastChat)}
}

// allow records the line and reports whether it may be broadcast. The same
// line repeated inside the window is dropped.
func (b *chatBook) allow(playerID uint16, message string, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.last[playerID]; ok && prev.message == message && now.Sub(prev.at) < repeatWindow {
		return false
	}
	b.last[playerID] = lastChat{message: message, at: now}
	return true
}

func (b *chatBook) forget(playerID uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.last, playerID)
}

// filterChat replaces blocked words with asterisks of the same length.
func filterChat(message string) string {
	lower := strings.ToLower(message)
	for _, word := range blockedWords {
		for {
			i := strings.Index(lower, word)
			if i < 0 {
				break
			}
			mask := strings.Repeat("*", len(word))
			message = message[:i] + mask + message[i+len(word):]
			lower = lower[:i] + mask + lower[i+len(word):]
		}
	}
	return message
}
