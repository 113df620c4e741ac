package model

import "time"

type Snapshot struct {
	ID             uint64    `gorm:"primaryKey"`
	OwnerID        uint64    `gorm:"not null;uniqueIndex:idx_snapshot_owner_date"`
	SnapshotDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_snapshot_owner_date"`
	FollowerCount  int       `gorm:"type:int;not null;default:0"`
	FollowingCount int       `gorm:"type:int;not null;default:0"`
	CreatedAt      time.Time
}

func (Snapshot) TableName() string {
	return "follower_snapshots"
}
