package gameserver

// ClientState represents the state machine of one client connection.
type ClientState int32

const (
	// StateConnected means the TCP connection is open but nobody logged in.
	// Only Login, Register and Ping are accepted.
	StateConnected ClientState = iota
	// StateInGame means login succeeded and the player is spawned in a room.
	StateInGame
	// StateDisconnected means the connection is closed or closing.
	StateDisconnected
)

func (s ClientState) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateInGame:
		return "IN_GAME"
	case StateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// Login result codes carried in the Login response.
const (
	LoginSuccess         = 1
	LoginNoAccount       = 2
	LoginWrongPassword   = 3
	LoginAlreadyLoggedIn = 4
	LoginVersionMismatch = 5
	LoginAccountBanned   = 6
	LoginIPBanned        = 7
	LoginDeviceBanned    = 8
)

// Register result codes carried in the Register response.
const (
	RegisterSuccess      = 1
	RegisterExists       = 2
	RegisterIPBanned     = 3
	RegisterDeviceBanned = 4
)
