package session

import (
	"sync"
	"time"

	"wordfetch/internal/pkg/protocol"

	"github.com/google/uuid"
)

// Store tracks the sessions of open connections.
type Store interface {
	New(id uuid.UUID, remoteAddr string) error
	Get(id uuid.UUID) (Session, error)
	Record(id uuid.UUID, kind protocol.Kind) error
	Clear(id uuid.UUID) error
	Len() int
}

// Session is what the server knows about one connection.
type Session struct {
	RemoteAddr string
	Started    time.Time
	Requests   int
	Invalid    int
	Finished   bool
}

type MemoryStore struct {
	sessions map[uuid.UUID]Session
	mu       sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]Session),
	}
}

func (p *MemoryStore) New(id uuid.UUID, remoteAddr string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[id]; ok {
		return ErrSessionAlreadyExists
	}
	p.sessions[id] = Session{
		RemoteAddr: remoteAddr,
		Started:    time.Now(),
	}
	return nil
}

func (p *MemoryStore) Get(id uuid.UUID) (Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if sess, ok := p.sessions[id]; ok {
		return sess, nil
	}
	return Session{}, ErrSessionNotFound
}

// Record counts one answered request of the given kind.
func (p *MemoryStore) Record(id uuid.UUID, kind protocol.Kind) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cpy, ok := p.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	cpy.Requests++
	switch kind {
	case protocol.KindInvalidRequest:
		cpy.Invalid++
	case protocol.KindEndOfData:
		cpy.Finished = true
	}
	p.sessions[id] = cpy
	return nil
}

func (p *MemoryStore) Clear(id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(p.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (p *MemoryStore) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}
