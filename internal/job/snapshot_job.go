package job

import (
	"Fanscope/internal/pkg/logger"
	"Fanscope/internal/repository"
	"Fanscope/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

type SnapshotJob struct {
	relationRepo repository.RelationRepo
	snapshotSvc  service.SnapshotService
}

func NewSnapshotJob(relationRepo repository.RelationRepo, snapshotSvc service.SnapshotService) *SnapshotJob {
	return &SnapshotJob{
		relationRepo: relationRepo,
		snapshotSvc:  snapshotSvc,
	}
}

// Run 给所有有关系数据的账号补一张当日计数快照
func (s *SnapshotJob) Run() {
	traceID := "job-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ownerIDs, err := s.relationRepo.DistinctOwnerIDs(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list owner ids error", "err", err)
		return
	}

	success := 0
	for _, ownerID := range ownerIDs {
		if _, err := s.snapshotSvc.RecordSnapshot(ctx, ownerID); err != nil {
			log.ErrorContext(ctx, "record snapshot error", "owner_id", ownerID, "err", err)
			continue
		}
		success++
	}

	log.InfoContext(ctx, "daily snapshot job done",
		"total", len(ownerIDs),
		"success", success,
		"date", time.Now().Format(time.DateOnly),
	)
}
