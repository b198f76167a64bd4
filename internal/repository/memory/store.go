// Package memory implements the repositories on top of in-process maps.
// Documents are copied on every read and write so callers never share
// state with the store; each call is atomic on its own, nothing more.
package memory

import (
	"sync"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
)

// Store holds the three collections.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	profiles map[string]*domain.Profile
	posts    map[string]*domain.Post
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*domain.User),
		profiles: make(map[string]*domain.Profile),
		posts:    make(map[string]*domain.Post),
	}
}
