package constants

// Slime Online 2 Protocol Constants
//
// This file contains the protocol-level constants the live client is built
// against. Changing any of them breaks compatibility with shipped clients.

// Protocol Version Constants
const (
	// ProtocolVersion is the client build the server accepts. Login and
	// registration requests carrying any other version are rejected.
	ProtocolVersion = "0.106"

	// DefaultPort is the TCP port the game server listens on.
	DefaultPort = 5555
)

// Packet Structure Constants
const (
	// PacketHeaderSize is the packet length header size (2 bytes, little-endian uint16).
	// The header itself is never encrypted.
	PacketHeaderSize = 2

	// MessageTypeSize is the message id field size at the start of every payload.
	MessageTypeSize = 2

	// MaxMessageSize is the maximum encrypted payload size in bytes.
	MaxMessageSize = 8192
)

// Cipher Keys
//
// The client re-keys RC4 for every message with a fixed key per direction.
const (
	// ClientEncryptKey keys messages the client sends (server decrypts with it).
	ClientEncryptKey = "retrtz7jmijb5467n47"

	// ClientDecryptKey keys messages the server sends (client decrypts with it).
	ClientDecryptKey = "t54gz65u74njb6zg6"
)

// Account Constants
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 6
	MaxPasswordLength = 50
)

// Chat Constants
const (
	// MaxChatLength is the maximum chat message length after trimming.
	MaxChatLength = 100

	// ChatMinInterval is the minimum spacing between two chat messages
	// from one player, in milliseconds.
	ChatMinInterval = 2000
)

// Economy Constants
const (
	// MaxPoints caps the carried point balance of a character.
	MaxPoints = 10_000_000

	// MaxBankBalance caps the banked balance of a character.
	MaxBankBalance = 100_000_000
)

// Inventory Constants
const (
	// InventorySlots is the slot count of each item category
	// (outfits, accessories, items, tools).
	InventorySlots = 9

	// EmoteSlots is the slot count of the emote bar.
	EmoteSlots = 5

	// MaxItemID is the highest item id the client knows how to render.
	MaxItemID = 61
)

// Clan Constants
const (
	MinClanNameLength = 3
	MaxClanNameLength = 20
	MaxClanMembers    = 50

	// ClanCreationCost is the point price of founding a clan.
	ClanCreationCost = 10_000
)

// World Constants
const (
	// MaxRoomID is the highest addressable room id.
	MaxRoomID = 1000

	// MaxPlayersPerRoom caps concurrent players in one room.
	MaxPlayersPerRoom = 50

	// MaxRoomX and MaxRoomY bound player coordinates inside a room.
	MaxRoomX = 5000
	MaxRoomY = 3000

	// SpawnRoomID, SpawnX and SpawnY place freshly created characters.
	SpawnRoomID = 32
	SpawnX      = 385
	SpawnY      = 71

	// DefaultBody is the body sprite of freshly created characters.
	DefaultBody = 1

	// DroppedItemTTLSecs is how long a discarded item stays on the floor.
	DroppedItemTTLSecs = 60

	// ItemUseCooldownSecs is the minimum gap between uses of the same item id.
	ItemUseCooldownSecs = 2

	// CollectibleRespawnSecs is how long a taken collectible stays gone.
	CollectibleRespawnSecs = 60
)

// Connection Constants
const (
	// MaxConnectionsPerIP caps simultaneous sockets from one address.
	MaxConnectionsPerIP = 3

	// MaxTotalConnections caps simultaneous sockets server-wide.
	MaxTotalConnections = 1000

	// ConnectionTimeoutSecs is the idle deadline of an authenticated session.
	ConnectionTimeoutSecs = 300

	// UnauthenticatedTimeoutSecs is the deadline to authenticate after connect.
	UnauthenticatedTimeoutSecs = 30
)

// Movement Constants
//
// Direction codes 1..13 as the client encodes them. Ground starts, ground
// stops and landings carry both coordinates, Jump carries only x, and the
// release and air codes carry none.
const (
	DirStartLeftGround  = 1
	DirStartRightGround = 2
	DirJump             = 3
	DirDuck             = 4
	DirStopLeftGround   = 5
	DirStopRightGround  = 6
	DirReleaseJump      = 7
	DirReleaseDuck      = 8
	DirLanding          = 9
	DirStartLeftAir     = 10
	DirStartRightAir    = 11
	DirStopLeftAir      = 12
	DirStopRightAir     = 13

	MinDirection = DirStartLeftGround
	MaxDirection = DirStopRightAir
)

// Anti-Cheat Constants
const (
	// MaxShopDistance is how far from a shop anchor a purchase may come
	// from, in pixels.
	MaxShopDistance = 300

	// MaxMovementDistance is the largest plausible displacement in one
	// movement update, in pixels.
	MaxMovementDistance = 600.0

	// MaxPlayerSpeed is the top sustained speed in pixels per second.
	MaxPlayerSpeed = 300.0

	// MovementLagFloor is the displacement always tolerated regardless of
	// elapsed time, covering client-side lag bursts.
	MovementLagFloor = 50.0

	// ViolationWindowSecs is the sliding window for counting violations.
	ViolationWindowSecs = 60

	// ViolationThreshold converts accumulated violations into a flag.
	ViolationThreshold = 5

	// FlagsBeforeKick disconnects a flagged player.
	FlagsBeforeKick = 3

	// FlagsBeforeBan writes a ban record for a flagged player.
	FlagsBeforeBan = 10
)
