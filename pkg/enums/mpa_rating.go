package enums

import "fmt"

// MpaRating is a Motion Picture Association film rating. Catalog ids are the
// 1-based position in validMpaRatings and match the mpa_ratings seed rows.
type MpaRating string

const (
	MpaRatingG    MpaRating = "G"
	MpaRatingPG   MpaRating = "PG"
	MpaRatingPG13 MpaRating = "PG-13"
	MpaRatingR    MpaRating = "R"
	MpaRatingNC17 MpaRating = "NC-17"
)

var validMpaRatings = []MpaRating{
	MpaRatingG,
	MpaRatingPG,
	MpaRatingPG13,
	MpaRatingR,
	MpaRatingNC17,
}

// MpaRatings returns the catalog in id order.
func MpaRatings() []MpaRating {
	return append([]MpaRating(nil), validMpaRatings...)
}

// MpaRatingByID resolves a catalog id.
func MpaRatingByID(id int64) (MpaRating, bool) {
	if id < 1 || id > int64(len(validMpaRatings)) {
		return "", false
	}
	return validMpaRatings[id-1], true
}

// String implements fmt.Stringer.
func (m MpaRating) String() string {
	return string(m)
}

// ID returns the catalog id, or 0 for unknown ratings.
func (m MpaRating) ID() int64 {
	for i, candidate := range validMpaRatings {
		if candidate == m {
			return int64(i + 1)
		}
	}
	return 0
}

// IsValid reports whether the value matches a known MpaRating.
func (m MpaRating) IsValid() bool {
	return m.ID() != 0
}

// ParseMpaRating converts raw input into an MpaRating.
func ParseMpaRating(value string) (MpaRating, error) {
	for _, candidate := range validMpaRatings {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mpa rating %q", value)
}
