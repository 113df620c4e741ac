package consts

const (
	RelationStatsKey = "relation:stats:"
)

const (
	RelationImportLock = "relation:import:lock:"
)
