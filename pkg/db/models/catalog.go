package models

// Mpa is a seeded rating row; ids mirror enums.MpaRatings order.
type Mpa struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;type:text;not null"`
}

func (Mpa) TableName() string { return "mpa_ratings" }

// Genre is a seeded genre row; ids mirror enums.Genres order.
type Genre struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;type:text;not null"`
}

func (Genre) TableName() string { return "genres" }
