package dto

// SnapshotRequest 手动触发快照
type SnapshotRequest struct {
	OwnerID uint64 `json:"owner_id" validate:"required"`
}

// SnapshotDTO 某天的计数快照
type SnapshotDTO struct {
	OwnerID        uint64 `json:"owner_id"`
	SnapshotDate   string `json:"snapshot_date"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}
