package films

import (
	"sort"

	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// DefaultPopularCount is used when the caller asks for zero or fewer films.
const DefaultPopularCount = 10

// RankByLikes orders films by like count descending, breaking ties by id
// ascending. Films without likes follow in id order. At most n films are
// returned; n <= 0 means DefaultPopularCount. The input slice is not modified.
func RankByLikes(films []models.Film, counts []models.LikeCount, n int) []models.Film {
	if n <= 0 {
		n = DefaultPopularCount
	}

	likes := make(map[int64]int64, len(counts))
	for _, c := range counts {
		likes[c.FilmID] = c.Count
	}

	ranked := make([]models.Film, len(films))
	copy(ranked, films)
	sort.SliceStable(ranked, func(i, j int) bool {
		li, lj := likes[ranked[i].ID], likes[ranked[j].ID]
		if li != lj {
			return li > lj
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
