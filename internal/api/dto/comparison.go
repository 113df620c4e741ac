package dto

// ComparisonEntry 对比结果行。不在哪一侧，对应时间就是 null
type ComparisonEntry struct {
	Username      string  `json:"username"`
	DateFollowed  *string `json:"date_followed"`
	DateFollowing *string `json:"date_following"`
	IsMutual      bool    `json:"is_mutual"`
}

// ComparisonSummary 两侧集合一次遍历得到的计数汇总
type ComparisonSummary struct {
	TotalFollowers     int `json:"total_followers"`
	TotalFollowing     int `json:"total_following"`
	MutualsCount       int `json:"mutuals_count"`
	FollowersOnlyCount int `json:"followers_only_count"`
	FollowingOnlyCount int `json:"following_only_count"`
}
