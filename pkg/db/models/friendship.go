package models

import (
	"time"

	"github.com/angelmondragon/filmorate-backend/pkg/enums"
)

// Friendship is the directed edge user_id -> friend_id.
type Friendship struct {
	UserID    int64                  `gorm:"column:user_id;primaryKey"`
	FriendID  int64                  `gorm:"column:friend_id;primaryKey"`
	Status    enums.FriendshipStatus `gorm:"column:status;type:text;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (Friendship) TableName() string { return "friendships" }
