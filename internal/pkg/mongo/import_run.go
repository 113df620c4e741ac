package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImportFailure 单行导入失败明细
type ImportFailure struct {
	Index    int    `bson:"index" json:"index"` // 行在原始批次里的下标
	Username string `bson:"username" json:"username"`
	Reason   string `bson:"reason" json:"reason"`
}

// ImportRunModel 一次导入的审计记录
type ImportRunModel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID         string             `bson:"run_id" json:"runId"`
	OwnerID       uint64             `bson:"owner_id" json:"ownerId"`
	Kind          string             `bson:"kind" json:"kind"`
	Source        string             `bson:"source,omitempty" json:"source"`         // 数据来源标记，如导出文件名
	Created       int                `bson:"created" json:"created"`
	Updated       int                `bson:"updated" json:"updated"`
	Skipped       int                `bson:"skipped" json:"skipped"`
	Failed        int                `bson:"failed" json:"failed"`
	Failures      []ImportFailure    `bson:"failures,omitempty" json:"failures"` // 只保留前若干条明细
	ArchiveObject string             `bson:"archive_object,omitempty" json:"archiveObject"`
	StartedAt     time.Time          `bson:"started_at" json:"startedAt"`
	FinishedAt    time.Time          `bson:"finished_at" json:"finishedAt"`
	DurationMs    int64              `bson:"duration_ms" json:"durationMs"`
}
