package session

import (
	"context"
	"sync"
	"time"

	"github.com/StounhandJ/tiktok_page/internal/utils"
	"github.com/google/uuid"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store хранит сессии страниц в памяти по id из cookie
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	maxIdle  time.Duration
	now      func() time.Time
}

func NewStore(maxIdle time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		maxIdle:  maxIdle,
		now:      time.Now,
	}
}

// Get возвращает сессию по id, для пустого или неизвестного id создаёт новую
func (st *Store) Get(id string) (*Session, string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if e, ok := st.sessions[id]; ok && id != "" {
		e.lastSeen = st.now()

		return e.session, id
	}

	id = uuid.NewString()
	s := New()
	st.sessions[id] = &entry{session: s, lastSeen: st.now()}

	return s, id
}

// Named возвращает сессию с заданным ключом, создавая её при необходимости
func (st *Store) Named(key string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[key]
	if !ok {
		e = &entry{session: New()}
		st.sessions[key] = e
	}

	e.lastSeen = st.now()

	return e.session
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	return len(st.sessions)
}

// Sweep удаляет сессии, к которым не обращались дольше maxIdle
func (st *Store) Sweep() int {
	if st.maxIdle <= 0 {
		return 0
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	deadline := st.now().Add(-st.maxIdle)

	for id, e := range st.sessions {
		if e.lastSeen.Before(deadline) {
			delete(st.sessions, id)
			removed++
		}
	}

	return removed
}

func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				utils.Log.Debugf("удалено неактивных сессий: %d", n)
			}
		}
	}
}
