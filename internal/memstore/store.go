// Package memstore keeps films, users and their relations in process memory.
// It backs the API when FILMORATE_STORAGE=memory and the service tests.
// Every mutation runs under one write lock, so each call is atomic.
package memstore

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/angelmondragon/filmorate-backend/internal/catalog"
	"github.com/angelmondragon/filmorate-backend/internal/films"
	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/internal/likes"
	"github.com/angelmondragon/filmorate-backend/internal/users"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
)

// ErrDuplicateUser mirrors the unique index on lower(email) and lower(login).
var ErrDuplicateUser = errors.New("memstore: duplicate key value violates unique user email or login")

type likeKey struct {
	filmID int64
	userID int64
}

type edgeKey struct {
	userID   int64
	friendID int64
}

// Store is the shared state behind the typed views returned by Users, Films,
// Likes, Friends and Catalog.
type Store struct {
	mu sync.RWMutex

	users  map[int64]models.User
	films  map[int64]models.Film
	likes  map[likeKey]struct{}
	edges  map[edgeKey]enums.FriendshipStatus
	userID int64
	filmID int64

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users: map[int64]models.User{},
		films: map[int64]models.Film{},
		likes: map[likeKey]struct{}{},
		edges: map[edgeKey]enums.FriendshipStatus{},
		now:   time.Now,
	}
}

func (s *Store) Users() *Users         { return &Users{s: s} }
func (s *Store) Films() *Films         { return &Films{s: s} }
func (s *Store) Likes() *Likes         { return &Likes{s: s} }
func (s *Store) Friends() *Friendships { return &Friendships{s: s} }
func (s *Store) Catalog() *Catalog     { return &Catalog{} }

func sortedIDs[T any](rows map[int64]T) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var (
	_ users.Store   = (*Users)(nil)
	_ films.Store   = (*Films)(nil)
	_ likes.Store   = (*Likes)(nil)
	_ friends.Store = (*Friendships)(nil)
	_ catalog.Store = (*Catalog)(nil)
)
