package sessions

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const cleanupInterval = 5 * time.Minute

// chat roles stored in session history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// a single turn in a session's chat history
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// represents one user's chat session
type Session struct {
	ID           string
	Messages     []Message
	CreatedAt    time.Time
	LastActivity time.Time
	ExpiresAt    time.Time
}

// a point-in-time view of a session's memory state
// LastInteraction carries the content of the most recent message
type Summary struct {
	SessionID       string  `json:"session_id"`
	MessageCount    int     `json:"message_count"`
	HasMemory       bool    `json:"has_memory"`
	LastInteraction *string `json:"last_interaction"`
}

// manages chat sessions in memory
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
	stop     chan struct{}
}

// returns a new session manager and starts its cleanup goroutine
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go m.cleanupExpiredSessions()

	return m
}

// returns a new short session ID (first 8 chars of a UUID)
func NewSessionID() string {
	return uuid.NewString()[:8]
}

// resolves a session id, creating the session when missing or expired
// an empty id gets a freshly generated one
func (m *Manager) GetOrCreate(sessionID string) string {
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.getOrCreateLocked(sessionID).ID
}

// appends a message to the session's history, creating the session if needed
func (m *Manager) Append(sessionID, role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := m.getOrCreateLocked(sessionID)
	now := time.Now()

	session.Messages = append(session.Messages, Message{Role: role, Content: content})
	session.LastActivity = now
	session.ExpiresAt = now.Add(m.ttl)
}

// returns a copy of the session's messages
func (m *Manager) History(sessionID string) ([]Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists || time.Now().After(session.ExpiresAt) {
		return nil, false
	}

	return append([]Message(nil), session.Messages...), true
}

// removes a session's history, reporting whether one existed
func (m *Manager) Clear(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.sessions[sessionID]
	delete(m.sessions, sessionID)

	return exists
}

// describes the session's memory state
func (m *Manager) Summary(sessionID string) (Summary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists || time.Now().After(session.ExpiresAt) {
		return Summary{SessionID: sessionID}, false
	}

	summary := Summary{
		SessionID:    sessionID,
		MessageCount: len(session.Messages),
		HasMemory:    len(session.Messages) > 0,
	}

	if n := len(session.Messages); n > 0 {
		last := session.Messages[n-1].Content
		summary.LastInteraction = &last
	}

	return summary, true
}

// returns the ids of all active sessions
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	ids := make([]string, 0, len(m.sessions))

	for id, session := range m.sessions {
		if now.Before(session.ExpiresAt) {
			ids = append(ids, id)
		}
	}

	sort.Strings(ids)

	return ids
}

// returns the number of active sessions
func (m *Manager) Count() int {
	return len(m.List())
}

// stops the cleanup goroutine
func (m *Manager) Stop() {
	close(m.stop)
}

func (m *Manager) getOrCreateLocked(sessionID string) *Session {
	now := time.Now()

	session, exists := m.sessions[sessionID]
	if exists && now.Before(session.ExpiresAt) {
		return session
	}

	session = &Session{
		ID:           sessionID,
		Messages:     []Message{},
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(m.ttl),
	}
	m.sessions[sessionID] = session

	return session
}

// runs periodically to remove expired sessions
func (m *Manager) cleanupExpiredSessions() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.removeExpired()
		case <-m.stop:
			return
		}
	}
}

func (m *Manager) removeExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	for id, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}
