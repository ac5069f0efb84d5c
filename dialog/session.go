package dialog

import "sync"

// Phase is the position of a user inside the save dialogue.
type Phase int

const (
	// PhaseIdle means no save dialogue is running.
	PhaseIdle Phase = iota
	// PhaseAwaitingName means the bot asked for an item name.
	PhaseAwaitingName
	// PhaseAwaitingSection means the bot offered the section keyboard.
	PhaseAwaitingSection
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingName:
		return "awaiting_name"
	case PhaseAwaitingSection:
		return "awaiting_section"
	default:
		return "unknown"
	}
}

// Session holds the partial save state accumulated during a dialogue.
// The zero value is an idle session.
type Session struct {
	Phase       Phase
	Description string
	ItemName    string
}

// Sessions tracks per-user dialogue state in memory.
// Dialogue state is deliberately not persisted; a restart drops
// half-finished saves and users simply start over.
type Sessions struct {
	m sync.Map // int64 -> Session
}

// NewSessions builds an empty session store.
func NewSessions() *Sessions {
	return &Sessions{}
}

// Get returns the user's session, idle when none exists.
func (s *Sessions) Get(userID int64) Session {
	v, ok := s.m.Load(userID)
	if !ok {
		return Session{}
	}
	return v.(Session)
}

// Put stores the user's session.
func (s *Sessions) Put(userID int64, sess Session) {
	if sess.Phase == PhaseIdle {
		s.m.Delete(userID)
		return
	}
	s.m.Store(userID, sess)
}

// Clear drops the user's session, returning them to idle.
func (s *Sessions) Clear(userID int64) {
	s.m.Delete(userID)
}

// InProgress reports whether the user is inside a save dialogue.
func (s *Sessions) InProgress(userID int64) bool {
	v, ok := s.m.Load(userID)
	if !ok {
		return false
	}
	return v.(Session).Phase != PhaseIdle
}
