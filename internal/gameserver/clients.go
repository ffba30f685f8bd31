package gameserver

import (
	"sync"
)

// ClientManager tracks connected clients by account and by runtime player id.
// One account holds at most one live session; logging in again displaces the
// old one.
type ClientManager struct {
	mu        sync.RWMutex
	byAccount map[int64]*Client
	byPlayer  map[uint16]*Client

	loginMu sync.Mutex
	logins  map[int64]*loginGate
}

type loginGate struct {
	sync.Mutex
	refs int
}

// NewClientManager creates an empty registry.
func NewClientManager() *ClientManager {
	return &ClientManager{
		byAccount: make(map[int64]*Client),
		byPlayer:  make(map[uint16]*Client),
		logins:    make(map[int64]*loginGate),
	}
}

// LockAccount serializes the evict-then-install window of one account.
// Concurrent logins for the same account wait here; different accounts do
// not contend.
func (m *ClientManager) LockAccount(accountID int64) {
	m.loginMu.Lock()
	g, ok := m.logins[accountID]
	if !ok {
		g = &loginGate{}
		m.logins[accountID] = g
	}
	g.refs++
	m.loginMu.Unlock()
	g.Lock()
}

// UnlockAccount releases the login gate taken by LockAccount.
func (m *ClientManager) UnlockAccount(accountID int64) {
	m.loginMu.Lock()
	g := m.logins[accountID]
	g.refs--
	if g.refs == 0 {
		delete(m.logins, accountID)
	}
	m.loginMu.Unlock()
	g.Unlock()
}

// Install registers an authenticated client. When the account already has a
// live session, the old client is swapped out and returned so the caller can
// notify and close it. The new session is installed either way.
func (m *ClientManager) Install(accountID int64, playerID uint16, c *Client) (evicted *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old := m.byAccount[accountID]
	if old != nil && old != c {
		evicted = old
		if p := old.Player(); p != nil {
			delete(m.byPlayer, p.ID)
		}
	}
	m.byAccount[accountID] = c
	m.byPlayer[playerID] = c
	return evicted
}

// Remove drops a client's registrations. A client displaced by Install is
// already unregistered, so its own cleanup becomes a no-op here.
func (m *ClientManager) Remove(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc := c.AccountID(); acc != 0 && m.byAccount[acc] == c {
		delete(m.byAccount, acc)
	}
	if p := c.Player(); p != nil && m.byPlayer[p.ID] == c {
		delete(m.byPlayer, p.ID)
	}
}

// ByAccount resolves the live session of an account.
func (m *ClientManager) ByAccount(accountID int64) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byAccount[accountID]
	return c, ok
}

// ByPlayer resolves the client owning a runtime player id.
func (m *ClientManager) ByPlayer(playerID uint16) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byPlayer[playerID]
	return c, ok
}

// Count returns the number of authenticated sessions.
func (m *ClientManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byAccount)
}

// ForEach calls fn for every authenticated client. fn must not call back
// into the manager.
func (m *ClientManager) ForEach(fn func(c *Client)) {
	m.mu.RLock()
	clients := make([]*Client, 0, len(m.byAccount))
	for _, c := range m.byAccount {
		clients = append(clients, c)
	}
	m.mu.RUnlock()
	for _, c := range clients {
		fn(c)
	}
}
