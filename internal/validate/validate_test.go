package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "alice", false},
		{"with underscore", "user_123", false},
		{"with dash", "user-123", false},
		{"min length", "abc", false},
		{"max length", strings.Repeat("a", 20), false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 21), true},
		{"spaces", "user name", true},
		{"unicode", "пользователь", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Username(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("secret1"))
	assert.Error(t, Password("short"))
	assert.Error(t, Password(strings.Repeat("p", 51)))

	// Login is laxer, the stored hash decides.
	assert.NoError(t, LoginPassword("x"))
	assert.Error(t, LoginPassword(""))
	assert.Error(t, LoginPassword(strings.Repeat("p", 51)))
}

func TestChatMessage(t *testing.T) {
	assert.NoError(t, ChatMessage("hello"))
	assert.NoError(t, ChatMessage(strings.Repeat("a", 100)))
	assert.Error(t, ChatMessage(""))
	assert.Error(t, ChatMessage(strings.Repeat("a", 101)))
	assert.Error(t, ChatMessage("hi\x00there"))
	assert.NoError(t, ChatMessage("line\nbreak"))
}

func TestChatSeverity(t *testing.T) {
	err := ChatMessage("bad\x07bell")
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, SeverityMedium, verr.Severity)
	assert.Equal(t, "message", verr.Field)
}

func TestPositionAndRoom(t *testing.T) {
	assert.NoError(t, Position(0, 0))
	assert.NoError(t, Position(5000, 3000))
	assert.Error(t, Position(5001, 0))
	assert.Error(t, Position(0, 3001))

	assert.NoError(t, RoomID(0))
	assert.NoError(t, RoomID(1000))
	assert.Error(t, RoomID(1001))
}

func TestSlots(t *testing.T) {
	assert.Error(t, ItemSlot(0))
	assert.NoError(t, ItemSlot(1))
	assert.NoError(t, ItemSlot(9))
	assert.Error(t, ItemSlot(10))

	assert.Error(t, EmoteSlot(0))
	assert.NoError(t, EmoteSlot(5))
	assert.Error(t, EmoteSlot(6))
}

func TestItemIDAndPoints(t *testing.T) {
	assert.Error(t, ItemID(0))
	assert.NoError(t, ItemID(61))
	assert.Error(t, ItemID(62))

	assert.NoError(t, Points(10_000_000))
	assert.Error(t, Points(10_000_001))
}

func TestDirection(t *testing.T) {
	assert.Error(t, Direction(0))
	assert.NoError(t, Direction(1))
	assert.NoError(t, Direction(13))
	assert.Error(t, Direction(14))
}

func TestDeviceID(t *testing.T) {
	assert.NoError(t, DeviceID("AABBCCDDEEFF"))
	assert.NoError(t, DeviceID("aa:bb:cc:dd:ee:ff"))
	assert.NoError(t, DeviceID("AA-BB-CC-DD-EE-FF"))
	assert.Error(t, DeviceID(""))
	assert.Error(t, DeviceID("not-a-device"))
	assert.Error(t, DeviceID("AABBCCDDEE"))
}

func TestSanitizeChat(t *testing.T) {
	assert.Equal(t, "hello", SanitizeChat("he\x00llo"))
	assert.Equal(t, "a\nb", SanitizeChat("a\nb"))
	assert.Len(t, SanitizeChat(strings.Repeat("x", 200)), 100)
}
