package room

import "sync"

// Store persists rooms. Implementations must be safe for concurrent use.
type Store interface {
	Get(id string) (*Room, error)
	Set(room *Room) error
	Delete(id string) error
}

// MemoryStore keeps rooms in process memory
type MemoryStore struct {
	lock  sync.RWMutex
	rooms map[string]*Room
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*Room),
	}
}

// Get returns the room with the given ID
func (s *MemoryStore) Get(id string) (*Room, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	room, found := s.rooms[id]
	if !found {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

// Set stores the room, keyed by its ID
func (s *MemoryStore) Set(room *Room) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.rooms[room.ID] = room
	return nil
}

// Delete removes the room with the given ID
func (s *MemoryStore) Delete(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.rooms, id)
	return nil
}
