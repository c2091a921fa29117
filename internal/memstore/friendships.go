package memstore

import (
	"context"
	"maps"
	"sort"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
)

// Friendships is the friendship-edge view of the store.
type Friendships struct {
	s *Store
	// held is set inside Atomic, where the write lock is already taken.
	held bool
}

func (f *Friendships) rlock() func() {
	if f.held {
		return func() {}
	}
	f.s.mu.RLock()
	return f.s.mu.RUnlock
}

func (f *Friendships) lock() func() {
	if f.held {
		return func() {}
	}
	f.s.mu.Lock()
	return f.s.mu.Unlock
}

// Atomic runs fn under the write lock once both users are confirmed to
// exist. Edge changes made by fn are rolled back when it returns an error.
func (f *Friendships) Atomic(_ context.Context, userID, friendID int64, fn func(friends.EdgeStore) error) error {
	unlock := f.lock()
	defer unlock()

	for _, id := range []int64{userID, friendID} {
		if _, ok := f.s.users[id]; !ok {
			return gorm.ErrRecordNotFound
		}
	}

	snapshot := maps.Clone(f.s.edges)
	if err := fn(&Friendships{s: f.s, held: true}); err != nil {
		f.s.edges = snapshot
		return err
	}
	return nil
}

func (f *Friendships) Status(_ context.Context, userID, friendID int64) (enums.FriendshipStatus, error) {
	defer f.rlock()()

	if status, ok := f.s.edges[edgeKey{userID: userID, friendID: friendID}]; ok {
		return status, nil
	}
	return enums.FriendshipStatusNone, nil
}

func (f *Friendships) Upsert(_ context.Context, userID, friendID int64, status enums.FriendshipStatus) error {
	defer f.lock()()

	f.s.edges[edgeKey{userID: userID, friendID: friendID}] = status
	return nil
}

func (f *Friendships) Delete(_ context.Context, userID, friendID int64) (int64, error) {
	defer f.lock()()

	key := edgeKey{userID: userID, friendID: friendID}
	if _, ok := f.s.edges[key]; !ok {
		return 0, nil
	}
	delete(f.s.edges, key)
	return 1, nil
}

func (f *Friendships) FriendIDs(_ context.Context, userID int64, confirmedOnly bool) ([]int64, error) {
	defer f.rlock()()

	ids := []int64{}
	for key, status := range f.s.edges {
		if key.userID != userID {
			continue
		}
		if confirmedOnly && status != enums.FriendshipStatusConfirmed {
			continue
		}
		ids = append(ids, key.friendID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
