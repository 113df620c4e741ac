package api

import "Fanscope/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ImportHandler     *handler.ImportHandler
	ComparisonHandler *handler.ComparisonHandler
	StatsHandler      *handler.StatsHandler
	SnapshotHandler   *handler.SnapshotHandler
	RelationHandler   *handler.RelationHandler
}
