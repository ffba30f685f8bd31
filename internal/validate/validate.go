// Package validate holds the field validators every untrusted client input
// passes through before it reaches game state.
package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/udisondev/slime2go/internal/constants"
)

// Severity grades how suspicious a rejected input is. Low failures are
// ordinary user mistakes; High failures only occur with a modified client.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Error describes a rejected field.
type Error struct {
	Field    string
	Message  string
	Severity Severity
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fail(field, message string, severity Severity) *Error {
	return &Error{Field: field, Message: message, Severity: severity}
}

// Username checks registration usernames: length and charset.
func Username(username string) error {
	if len(username) < constants.MinUsernameLength {
		return fail("username", "username too short", SeverityLow)
	}
	if len(username) > constants.MaxUsernameLength {
		return fail("username", "username too long", SeverityMedium)
	}
	for _, c := range username {
		if !isUsernameRune(c) {
			return fail("username", "username contains invalid characters", SeverityMedium)
		}
	}
	return nil
}

func isUsernameRune(c rune) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

// Password checks registration passwords. Login accepts any non-empty
// password up to the cap, the stored hash decides.
func Password(password string) error {
	if len(password) < constants.MinPasswordLength {
		return fail("password", "password too short", SeverityLow)
	}
	if len(password) > constants.MaxPasswordLength {
		return fail("password", "password too long", SeverityMedium)
	}
	return nil
}

// LoginPassword checks passwords presented at login.
func LoginPassword(password string) error {
	if password == "" {
		return fail("password", "empty password", SeverityLow)
	}
	if len(password) > constants.MaxPasswordLength {
		return fail("password", "password too long", SeverityMedium)
	}
	return nil
}

// ChatMessage checks an incoming chat line. Control characters other than
// line breaks never come from the real client.
func ChatMessage(message string) error {
	if message == "" {
		return fail("message", "empty chat message", SeverityLow)
	}
	if len(message) > constants.MaxChatLength {
		return fail("message", "chat message too long", SeverityMedium)
	}
	for _, c := range message {
		if unicode.IsControl(c) && c != '\n' && c != '\r' {
			return fail("message", "message contains control characters", SeverityMedium)
		}
	}
	return nil
}

// ClanName checks a proposed clan name.
func ClanName(name string) error {
	if len(name) < constants.MinClanNameLength {
		return fail("clan_name", "clan name too short", SeverityLow)
	}
	if len(name) > constants.MaxClanNameLength {
		return fail("clan_name", "clan name too long", SeverityMedium)
	}
	return nil
}

// Position checks reported coordinates against the room bounds.
func Position(x, y uint16) error {
	if x > constants.MaxRoomX {
		return fail("x", fmt.Sprintf("x position %d out of bounds", x), SeverityHigh)
	}
	if y > constants.MaxRoomY {
		return fail("y", fmt.Sprintf("y position %d out of bounds", y), SeverityHigh)
	}
	return nil
}

// RoomID checks a destination room id.
func RoomID(roomID uint16) error {
	if roomID > constants.MaxRoomID {
		return fail("room_id", fmt.Sprintf("room id %d out of range", roomID), SeverityHigh)
	}
	return nil
}

// ItemSlot checks a 1-based inventory slot index. The same range covers
// outfits, accessories, items and tools.
func ItemSlot(slot uint8) error {
	if slot < 1 || slot > constants.InventorySlots {
		return fail("slot", fmt.Sprintf("slot %d out of range", slot), SeverityMedium)
	}
	return nil
}

// EmoteSlot checks a 1-based emote bar index.
func EmoteSlot(slot uint8) error {
	if slot < 1 || slot > constants.EmoteSlots {
		return fail("emote_slot", fmt.Sprintf("emote slot %d out of range", slot), SeverityMedium)
	}
	return nil
}

// ItemID checks an item id against the client catalog.
func ItemID(itemID uint16) error {
	if itemID < 1 || itemID > constants.MaxItemID {
		return fail("item_id", fmt.Sprintf("unknown item id %d", itemID), SeverityHigh)
	}
	return nil
}

// Points checks a point total.
func Points(points uint32) error {
	if points > constants.MaxPoints {
		return fail("points", fmt.Sprintf("points %d exceed cap", points), SeverityHigh)
	}
	return nil
}

// Direction checks a movement direction code.
func Direction(direction uint8) error {
	if direction < constants.MinDirection || direction > constants.MaxDirection {
		return fail("direction", fmt.Sprintf("invalid direction %d", direction), SeverityMedium)
	}
	return nil
}

// DeviceID checks the device identifier clients send with auth requests.
// Accepted shapes: 12 hex digits, optionally separated by ':' or '-'.
func DeviceID(device string) error {
	if device == "" {
		return fail("device_id", "device id is empty", SeverityLow)
	}
	digits := 0
	for _, c := range device {
		switch {
		case isHexDigit(c):
			digits++
		case c == ':' || c == '-':
		default:
			return fail("device_id", "invalid device id format", SeverityMedium)
		}
	}
	if digits != 12 {
		return fail("device_id", "invalid device id format", SeverityMedium)
	}
	return nil
}

func isHexDigit(c rune) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// SanitizeChat strips control characters and truncates to the chat cap.
func SanitizeChat(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	n := 0
	for _, c := range input {
		if n >= constants.MaxChatLength {
			break
		}
		if unicode.IsControl(c) && c != '\n' {
			continue
		}
		b.WriteRune(c)
		n++
	}
	return b.String()
}
