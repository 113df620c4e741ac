package model

import "time"

type Following struct {
	ID           uint64    `gorm:"primaryKey"`
	OwnerID      uint64    `gorm:"not null;uniqueIndex:idx_following_owner_username"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_following_owner_username"`
	DateFollowed time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

func (Following) TableName() string {
	return "following"
}
