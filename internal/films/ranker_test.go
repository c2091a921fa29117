package films

import (
	"testing"

	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

func filmIDs(list []models.Film) []int64 {
	out := make([]int64, 0, len(list))
	for _, f := range list {
		out = append(out, f.ID)
	}
	return out
}

func filmsWithIDs(ids ...int64) []models.Film {
	out := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Film{ID: id})
	}
	return out
}

func assertIDs(t *testing.T, got []models.Film, want ...int64) {
	t.Helper()
	ids := filmIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestRankByLikesOrdersByCount(t *testing.T) {
	counts := []models.LikeCount{{FilmID: 1, Count: 3}, {FilmID: 2, Count: 1}}
	ranked := RankByLikes(filmsWithIDs(1, 2, 3), counts, 2)
	assertIDs(t, ranked, 1, 2)
}

func TestRankByLikesBreaksTiesByID(t *testing.T) {
	counts := []models.LikeCount{{FilmID: 5, Count: 2}, {FilmID: 3, Count: 2}, {FilmID: 4, Count: 7}}
	ranked := RankByLikes(filmsWithIDs(5, 4, 3), counts, 3)
	assertIDs(t, ranked, 4, 3, 5)
}

func TestRankByLikesPadsWithUnlikedFilms(t *testing.T) {
	counts := []models.LikeCount{{FilmID: 4, Count: 1}}
	ranked := RankByLikes(filmsWithIDs(3, 1, 4, 2), counts, 3)
	assertIDs(t, ranked, 4, 1, 2)
}

func TestRankByLikesDefaultsCount(t *testing.T) {
	ids := make([]int64, 0, 15)
	for i := int64(1); i <= 15; i++ {
		ids = append(ids, i)
	}
	ranked := RankByLikes(filmsWithIDs(ids...), nil, 0)
	if len(ranked) != DefaultPopularCount {
		t.Fatalf("expected %d films, got %d", DefaultPopularCount, len(ranked))
	}
	assertIDs(t, ranked, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
}

func TestRankByLikesEmpty(t *testing.T) {
	ranked := RankByLikes(nil, nil, 5)
	if len(ranked) != 0 {
		t.Fatalf("expected empty ranking, got %v", filmIDs(ranked))
	}
}

func TestRankByLikesLeavesInputUntouched(t *testing.T) {
	input := filmsWithIDs(2, 1)
	RankByLikes(input, []models.LikeCount{{FilmID: 1, Count: 1}}, 2)
	assertIDs(t, input, 2, 1)
}

func TestRankByLikesIsDeterministic(t *testing.T) {
	counts := []models.LikeCount{{FilmID: 2, Count: 1}, {FilmID: 3, Count: 1}}
	first := filmIDs(RankByLikes(filmsWithIDs(3, 2, 1), counts, 10))
	for i := 0; i < 20; i++ {
		again := filmIDs(RankByLikes(filmsWithIDs(1, 3, 2), counts, 10))
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("ranking changed between runs: %v vs %v", first, again)
			}
		}
	}
}
