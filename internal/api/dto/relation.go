package dto

// ImportEntry 上游导出解析器给到的单行关系数据
type ImportEntry struct {
	Username     string `json:"username"`
	DateFollowed string `json:"date_followed"`
}

// ImportRequest 批量导入请求
type ImportRequest struct {
	OwnerID uint64        `json:"owner_id" validate:"required"`
	Kind    string        `json:"kind" validate:"required,oneof=followers following"`
	Entries []ImportEntry `json:"entries"`
	Source  string        `json:"source,omitempty"` // 数据来源标记，如导出文件名
}

// ImportResult 导入结果汇总，失败行不会中断整批
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// RelationItem 关系列表行
type RelationItem struct {
	Username     string `json:"username"`
	DateFollowed string `json:"date_followed"`
}

// ResetResult 清空账号关系数据的结果
type ResetResult struct {
	FollowersDeleted int64 `json:"followers_deleted"`
	FollowingDeleted int64 `json:"following_deleted"`
}
