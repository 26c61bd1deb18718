// Package session keeps conversation transcripts for the lifetime of the
// process. Nothing is persisted and nothing is evicted.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ragchat/internal/domain"
)

type entry struct {
	mu      sync.Mutex
	turns   []domain.Turn
	sources []domain.Document
}

// Store is an in-memory SessionStore. The map lock is held only to find a
// session; each session carries its own lock for transcript updates.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	newID    func() (string, error)
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		newID:    randomID,
		now:      time.Now,
	}
}

func randomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Create registers a new session seeded with turns and the originating sources.
func (s *Store) Create(turns []domain.Turn, sources []domain.Document) (string, error) {
	e := &entry{
		turns:   s.stamp(append([]domain.Turn(nil), turns...)),
		sources: append([]domain.Document(nil), sources...),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate session id: %w", err)
		}
		if _, taken := s.sessions[id]; taken {
			continue
		}
		s.sessions[id] = e
		return id, nil
	}
}

// Append adds turns to the end of a transcript as one atomic step.
func (s *Store) Append(id string, turns ...domain.Turn) error {
	e, err := s.get(id)
	if err != nil {
		return err
	}
	stamped := s.stamp(append([]domain.Turn(nil), turns...))
	e.mu.Lock()
	defer e.mu.Unlock()
	e.turns = append(e.turns, stamped...)
	return nil
}

// History returns a copy of the transcript, oldest first.
func (s *Store) History(id string) ([]domain.Turn, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Turn(nil), e.turns...), nil
}

// Sources returns a copy of the documents the session was created from.
func (s *Store) Sources(id string) ([]domain.Document, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return append([]domain.Document(nil), e.sources...), nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) get(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	return e, nil
}

func (s *Store) stamp(turns []domain.Turn) []domain.Turn {
	for i := range turns {
		if turns[i].Timestamp.IsZero() {
			turns[i].Timestamp = s.now()
		}
	}
	return turns
}
