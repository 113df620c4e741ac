package consts

const (
	KindFollowers = "followers"
	KindFollowing = "following"
)

const (
	CompareModeMutual        = "mutual"
	CompareModeFollowersOnly = "followers_only"
	CompareModeFollowingOnly = "following_only"
)

const (
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

const (
	GrowthPeriodWeek  = "week"
	GrowthPeriodMonth = "month"
	GrowthPeriodYear  = "year"
	GrowthPeriodAll   = "all"
)
