package models

import "time"

// Like records that a user liked a film. The pair is the primary key.
type Like struct {
	FilmID    int64     `gorm:"column:film_id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Like) TableName() string { return "likes" }

// LikeCount is the aggregate row returned by per-film like counting.
type LikeCount struct {
	FilmID int64 `gorm:"column:film_id"`
	Count  int64 `gorm:"column:like_count"`
}
