package enums

import "fmt"

// Genre tags a film. Catalog ids follow declaration order, starting at 1.
type Genre string

const (
	GenreComedy      Genre = "Comedy"
	GenreDrama       Genre = "Drama"
	GenreCartoon     Genre = "Cartoon"
	GenreThriller    Genre = "Thriller"
	GenreDocumentary Genre = "Documentary"
	GenreAction      Genre = "Action"
)

var validGenres = []Genre{
	GenreComedy,
	GenreDrama,
	GenreCartoon,
	GenreThriller,
	GenreDocumentary,
	GenreAction,
}

// Genres returns the catalog in id order.
func Genres() []Genre {
	return append([]Genre(nil), validGenres...)
}

// GenreByID resolves a catalog id.
func GenreByID(id int64) (Genre, bool) {
	if id < 1 || id > int64(len(validGenres)) {
		return "", false
	}
	return validGenres[id-1], true
}

// String implements fmt.Stringer.
func (g Genre) String() string {
	return string(g)
}

// ID returns the catalog id, or 0 for unknown genres.
func (g Genre) ID() int64 {
	for i, candidate := range validGenres {
		if candidate == g {
			return int64(i + 1)
		}
	}
	return 0
}

// IsValid reports whether the value matches a known Genre.
func (g Genre) IsValid() bool {
	return g.ID() != 0
}

// ParseGenre converts raw input into a Genre.
func ParseGenre(value string) (Genre, error) {
	for _, candidate := range validGenres {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid genre %q", value)
}
