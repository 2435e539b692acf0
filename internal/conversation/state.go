// internal/conversation/state.go
package conversation

import "sync"

// State is where a user is in the conversation.
type State int

const (
	// StateIdle interprets free text as a place submission.
	StateIdle State = iota
	// StateAwaitingCity interprets free text as the user's default city.
	StateAwaitingCity
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingCity:
		return "awaiting_city"
	default:
		return "unknown"
	}
}

// StateTable holds per-user state for the lifetime of the process.
// Only users in the middle of onboarding have an entry; everyone else is idle.
type StateTable struct {
	mu     sync.Mutex
	states map[int64]State
}

// NewStateTable creates an empty StateTable.
func NewStateTable() *StateTable {
	return &StateTable{states: make(map[int64]State)}
}

// Get returns the user's state.
func (t *StateTable) Get(userID int64) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[userID]
}

// Set moves the user to state. Moving to StateIdle drops the entry.
func (t *StateTable) Set(userID int64, state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if state == StateIdle {
		delete(t.states, userID)
		return
	}
	t.states[userID] = state
}

// Len reports how many users have a non-idle state.
func (t *StateTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}
