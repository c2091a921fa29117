package memstore

import (
	"context"
	"sort"

	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// Likes is the like-edge view of the store.
type Likes struct {
	s *Store
}

func (l *Likes) Add(_ context.Context, filmID, userID int64) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	key := likeKey{filmID: filmID, userID: userID}
	if _, ok := l.s.likes[key]; ok {
		return false, nil
	}
	l.s.likes[key] = struct{}{}
	return true, nil
}

func (l *Likes) Remove(_ context.Context, filmID, userID int64) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	key := likeKey{filmID: filmID, userID: userID}
	if _, ok := l.s.likes[key]; !ok {
		return false, nil
	}
	delete(l.s.likes, key)
	return true, nil
}

func (l *Likes) CountByFilm(_ context.Context) ([]models.LikeCount, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	totals := map[int64]int64{}
	for key := range l.s.likes {
		totals[key.filmID]++
	}
	out := make([]models.LikeCount, 0, len(totals))
	for filmID, count := range totals {
		out = append(out, models.LikeCount{FilmID: filmID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FilmID < out[j].FilmID })
	return out, nil
}
