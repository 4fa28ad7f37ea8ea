// Package invite holds the in-memory invite collection. Invites are
// ephemeral: they live for the server process only and are lost on restart.
package invite

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Invite struct {
	ID        string    `json:"id"`
	GroupName string    `json:"groupName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Manager owns the invite collection. All access goes through the mutex;
// handlers receive the manager by injection, never as ambient state.
type Manager struct {
	mu      sync.Mutex
	invites map[string][]Invite // keyed by group name
}

func NewManager() *Manager {
	return &Manager{invites: make(map[string][]Invite)}
}

func (m *Manager) Create(groupName string) Invite {
	inv := Invite{
		ID:        uuid.NewString(),
		GroupName: groupName,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.invites[groupName] = append(m.invites[groupName], inv)
	return inv
}

// List returns a copy of the group's invites.
func (m *Manager) List(groupName string) []Invite {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Invite, len(m.invites[groupName]))
	copy(out, m.invites[groupName])
	return out
}

// Exists reports whether the manager issued this exact invite for this
// group. Invites are multi-use and do not expire.
func (m *Manager) Exists(groupName, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, inv := range m.invites[groupName] {
		if inv.ID == id {
			return true
		}
	}
	return false
}

// DropGroup discards all invites for a group, called when the group is
// deleted or renamed.
func (m *Manager) DropGroup(groupName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.invites, groupName)
}
