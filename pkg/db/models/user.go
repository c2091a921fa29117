package models

import "time"

// User is a member of the social graph. Email and login are unique ignoring case.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;type:text;not null"`
	Login     string    `gorm:"column:login;type:text;not null"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Birthday  time.Time `gorm:"column:birthday;type:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
