package models

import "time"

// Film is a catalog entry. Genres are linked through film_genres and are
// written explicitly by the films repository, never through gorm associations.
type Film struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Description string    `gorm:"column:description;size:200;not null;default:''"`
	ReleaseDate time.Time `gorm:"column:release_date;type:date;not null"`
	Duration    int       `gorm:"column:duration;not null"`
	MpaID       int64     `gorm:"column:mpa_id;not null"`
	Mpa         *Mpa      `gorm:"foreignKey:MpaID"`
	Genres      []Genre   `gorm:"many2many:film_genres"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Film) TableName() string { return "films" }

// FilmGenre is one row of the film/genre join table.
type FilmGenre struct {
	FilmID  int64 `gorm:"column:film_id;primaryKey"`
	GenreID int64 `gorm:"column:genre_id;primaryKey"`
}

func (FilmGenre) TableName() string { return "film_genres" }
