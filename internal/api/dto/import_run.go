package dto

// ImportFailureDTO 单行导入失败的明细
type ImportFailureDTO struct {
	Index    int    `json:"index"`
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

// ImportRunDTO 一次导入的审计记录
type ImportRunDTO struct {
	RunID         string             `json:"run_id"`
	OwnerID       uint64             `json:"owner_id"`
	Kind          string             `json:"kind"`
	Source        string             `json:"source,omitempty"`
	Created       int                `json:"created"`
	Updated       int                `json:"updated"`
	Skipped       int                `json:"skipped"`
	Failed        int                `json:"failed"`
	Failures      []ImportFailureDTO `json:"failures,omitempty"`
	ArchiveObject string             `json:"archive_object,omitempty"`
	ArchiveURL    string             `json:"archive_url,omitempty"`
	StartedAt     string             `json:"started_at"`
	DurationMs    int64              `json:"duration_ms"`
}
