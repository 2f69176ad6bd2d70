package models

import (
	"time"

	"gorm.io/gorm"
)

// LikeCount is one row of the SQL-backed like store.
type LikeCount struct {
	ItemID    string `gorm:"primaryKey;size:191"`
	Count     int    `gorm:"column:likes;not null;default:0"`
	UpdatedAt time.Time
}

func (LikeCount) TableName() string {
	return "like_counts"
}

// LikeEvent 点赞历史记录，由队列消费者写入
type LikeEvent struct {
	gorm.Model
	ItemID string `gorm:"size:191;index"`
	Action string `gorm:"size:16"`
	Count  int
	At     time.Time `gorm:"index"`
}

// AutoMigrate creates the like tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&LikeCount{}, &LikeEvent{})
}
