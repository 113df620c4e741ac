package dto

// GrowthPoint 相邻周期之间的粉丝数变化
type GrowthPoint struct {
	PeriodLabel string `json:"period_label"` // 周格式 2024-W05，月格式 2024-01
	Delta       int    `json:"delta"`
}

// GrowthDetailPoint 逐个快照的明细增长曲线点，第一条全为 0
type GrowthDetailPoint struct {
	Date           string `json:"date"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	Gained         int    `json:"gained"`
	Lost           int    `json:"lost"`
	Net            int    `json:"net"`
}

// AcquisitionDateDTO 涨粉最多的日期
type AcquisitionDateDTO struct {
	Date            string `json:"date"`
	FollowersGained int    `json:"followers_gained"`
}

// FollowerStats 统计总览。follower_ratio 在关注数为 0 时是 null
type FollowerStats struct {
	TotalFollowers      int                   `json:"total_followers"`
	TotalFollowing      int                   `json:"total_following"`
	FollowerRatio       *float64              `json:"follower_ratio"`
	MutualsCount        int                   `json:"mutuals_count"`
	FollowersOnlyCount  int                   `json:"followers_only_count"`
	FollowingOnlyCount  int                   `json:"following_only_count"`
	WeeklyGrowth        []*GrowthPoint        `json:"weekly_growth"`
	MonthlyGrowth       []*GrowthPoint        `json:"monthly_growth"`
	TopAcquisitionDates []*AcquisitionDateDTO `json:"top_acquisition_dates"`
}
