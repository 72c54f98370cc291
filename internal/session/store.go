package session

import (
	"strings"
	"sync"
	"time"

	"server/internal/monitor"

	"github.com/google/uuid"
)

// Asset is one generated image tracked for display and download. URL assets
// point at the vendor CDN; local assets were decoded from inline payloads and
// persisted under StorageKey.
type Asset struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	URL        string    `json:"url,omitempty"`
	StorageKey string    `json:"storage_key,omitempty"`
	MIME       string    `json:"mime"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session holds all state owned by one browser session: the call event log
// and the generated asset list. Sessions never share state.
type Session struct {
	ID        string
	CreatedAt time.Time
	Events    *monitor.Log

	mu      sync.Mutex
	assets  []Asset
	prompts []string
}

const maxPromptHistory = 20

// AddPrompt remembers an enhanced prompt so the UI can offer recent
// variations. Oldest entries are evicted past maxPromptHistory.
func (s *Session) AddPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.prompts) > maxPromptHistory {
		s.prompts = s.prompts[len(s.prompts)-maxPromptHistory:]
	}
}

// Prompts returns a copy of the remembered prompts, oldest first.
func (s *Session) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// AddAsset records a generated image, newest last.
func (s *Session) AddAsset(a Asset) Asset {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.mu.Lock()
	s.assets = append(s.assets, a)
	s.mu.Unlock()
	return a
}

// Assets returns a copy of the tracked assets, oldest first.
func (s *Session) Assets() []Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Asset looks up one tracked asset by ID.
func (s *Session) Asset(id string) (Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Store hands out independent sessions keyed by ID. State lives in process
// memory only and is destroyed with the process.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	eventCap int
}

// NewStore creates a store whose sessions keep at most eventCap log entries.
func NewStore(eventCap int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		eventCap: eventCap,
	}
}

// Get returns the session for id, creating it on first use. An empty id
// yields a fresh session with a generated ID.
func (st *Store) Get(id string) *Session {
	id = strings.TrimSpace(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if s, ok := st.sessions[id]; ok {
			return s
		}
	} else {
		id = uuid.NewString()
	}
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		Events:    monitor.NewLog(st.eventCap),
	}
	st.sessions[id] = s
	return s
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
