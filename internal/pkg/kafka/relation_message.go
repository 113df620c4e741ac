package kafka

// RelationImportEntry 消息里的单行关系数据
type RelationImportEntry struct {
	Username     string `json:"username"`
	DateFollowed string `json:"date_followed"`
}

// RelationImportMessage 上游推送的整批关系导入消息
type RelationImportMessage struct {
	OwnerID uint64                `json:"owner_id"`
	Kind    string                `json:"kind"`
	Entries []RelationImportEntry `json:"entries"`
	Source  string                `json:"source"`
}
