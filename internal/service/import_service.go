package service

import (
	"Fanscope/internal/api/config"
	"Fanscope/internal/api/dto"
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/minio"
	pkgmongo "Fanscope/internal/pkg/mongo"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/repository"
	"bytes"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const (
	importLockTTL     = time.Minute * 5
	importLockRetries = 3
)

// importDateLayouts 上游导出里出现过的时间格式，按命中率排序
var importDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

type ImportService interface {
	ImportRelations(ctx context.Context, req *dto.ImportRequest) (*dto.ImportResult, error)
	GetImportRunList(ctx context.Context, ownerID uint64, page, pageSize int) ([]*dto.ImportRunDTO, int64, error)
}

type importServiceImpl struct {
	relationRepo  repository.RelationRepo
	snapshotSvc   SnapshotService
	importRunRepo pkgmongo.ImportRunRepo
}

func NewImportService(relationRepo repository.RelationRepo, snapshotSvc SnapshotService, importRunRepo pkgmongo.ImportRunRepo) ImportService {
	return &importServiceImpl{
		relationRepo:  relationRepo,
		snapshotSvc:   snapshotSvc,
		importRunRepo: importRunRepo,
	}
}

// ImportRelations 整批导入某一侧的关系数据。
// 坏行只计数不中断，批内同名后出现的覆盖先出现的，与库里完全一致的行跳过。
// 同一账号同一时间只允许一个导入在跑，落库后顺手打一张当天的快照
func (s *importServiceImpl) ImportRelations(ctx context.Context, req *dto.ImportRequest) (*dto.ImportResult, error) {
	if req.Kind != consts.KindFollowers && req.Kind != consts.KindFollowing {
		return nil, ErrKindInvalid
	}
	startedAt := time.Now()
	result := &dto.ImportResult{}

	valid := make([]model.RelationPair, 0, len(req.Entries))
	failures := make([]pkgmongo.ImportFailure, 0)
	for i, entry := range req.Entries {
		username := strings.TrimSpace(entry.Username)
		if username == "" {
			result.Failed++
			failures = appendFailure(failures, i, entry.Username, "username为空")
			continue
		}
		date, err := parseEntryDate(entry.DateFollowed)
		if err != nil {
			result.Failed++
			failures = appendFailure(failures, i, username, "时间格式不合法")
			continue
		}
		valid = append(valid, model.RelationPair{Username: username, DateFollowed: date})
	}
	valid = dedupLastWins(valid)

	lockKey := consts.RelationImportLock + strconv.FormatUint(req.OwnerID, 10)
	newUUID, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	locked, err := redis.TryLock(ctx, lockKey, newUUID.String(), importLockTTL, importLockRetries)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrImportInProgress
	}
	defer redis.UnLock(ctx, lockKey, newUUID.String())

	existing, err := s.relationRepo.ListDatePairs(ctx, req.OwnerID, req.Kind)
	if err != nil {
		return nil, err
	}
	existingDates := make(map[string]time.Time, len(existing))
	for _, p := range existing {
		existingDates[p.Username] = p.DateFollowed
	}

	toWrite := make([]model.RelationPair, 0, len(valid))
	for _, p := range valid {
		stored, ok := existingDates[p.Username]
		if !ok {
			result.Created++
			toWrite = append(toWrite, p)
			continue
		}
		if stored.Equal(p.DateFollowed) {
			result.Skipped++
			continue
		}
		result.Updated++
		toWrite = append(toWrite, p)
	}

	if err := s.relationRepo.UpsertBatch(ctx, req.OwnerID, req.Kind, toWrite); err != nil {
		if isDuplicateError(err) {
			return nil, ErrImportInProgress
		}
		return nil, err
	}

	if _, err := s.snapshotSvc.RecordSnapshot(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	s.recordImportRun(ctx, req, result, failures, startedAt)
	return result, nil
}

func (s *importServiceImpl) GetImportRunList(ctx context.Context, ownerID uint64, page, pageSize int) ([]*dto.ImportRunDTO, int64, error) {
	if s.importRunRepo == nil {
		return make([]*dto.ImportRunDTO, 0), 0, nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	offset := int64((page - 1) * pageSize)
	runs, err := s.importRunRepo.GetImportRunList(ctx, ownerID, int64(pageSize), offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.importRunRepo.GetImportRunCount(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	list := make([]*dto.ImportRunDTO, 0, len(runs))
	for _, run := range runs {
		item := &dto.ImportRunDTO{}
		if err := copier.Copy(item, run); err != nil {
			return nil, 0, err
		}
		item.StartedAt = run.StartedAt.Format("2006-01-02 15:04:05")
		item.ArchiveURL = minio.GetPublicURL(run.ArchiveObject)
		list = append(list, item)
	}
	return list, count, nil
}

// recordImportRun 归档原始批次并写审计记录，两步都是尽力而为，失败只打日志
func (s *importServiceImpl) recordImportRun(ctx context.Context, req *dto.ImportRequest, result *dto.ImportResult, failures []pkgmongo.ImportFailure, startedAt time.Time) {
	runID := uuid.NewString()
	archiveObject := s.archiveBatch(ctx, req, runID)

	if s.importRunRepo == nil {
		return
	}
	finishedAt := time.Now()
	run := &pkgmongo.ImportRunModel{
		RunID:         runID,
		OwnerID:       req.OwnerID,
		Kind:          req.Kind,
		Source:        req.Source,
		Created:       result.Created,
		Updated:       result.Updated,
		Skipped:       result.Skipped,
		Failed:        result.Failed,
		Failures:      failures,
		ArchiveObject: archiveObject,
		StartedAt:     startedAt,
		FinishedAt:    finishedAt,
		DurationMs:    finishedAt.Sub(startedAt).Milliseconds(),
	}
	if err := s.importRunRepo.CreateImportRun(ctx, run); err != nil {
		log.Warn("导入审计记录写入失败", "ownerId", req.OwnerID, "err", err)
	}
}

func (s *importServiceImpl) archiveBatch(ctx context.Context, req *dto.ImportRequest, runID string) string {
	if minio.Client == nil {
		return ""
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	objectName := fmt.Sprintf("imports/%d/%s.json", req.OwnerID, runID)
	if _, err := minio.UploadFile(ctx, objectName, bytes.NewReader(payload), int64(len(payload)), "application/json"); err != nil {
		log.Warn("导入批次归档失败", "ownerId", req.OwnerID, "err", err)
		return ""
	}
	return objectName
}

func parseEntryDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.New("时间为空")
	}
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析的时间: %s", raw)
}

// dedupLastWins 批内按 username 去重，保留最后一次出现的时间，顺序按首次出现
func dedupLastWins(pairs []model.RelationPair) []model.RelationPair {
	if len(pairs) < 2 {
		return pairs
	}
	latest := make(map[string]time.Time, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := latest[p.Username]; !ok {
			order = append(order, p.Username)
		}
		latest[p.Username] = p.DateFollowed
	}
	if len(order) == len(pairs) {
		return pairs
	}

	deduped := make([]model.RelationPair, 0, len(order))
	for _, username := range order {
		deduped = append(deduped, model.RelationPair{Username: username, DateFollowed: latest[username]})
	}
	return deduped
}

func appendFailure(failures []pkgmongo.ImportFailure, index int, username, reason string) []pkgmongo.ImportFailure {
	if len(failures) >= maxFailureDetails() {
		return failures
	}
	return append(failures, pkgmongo.ImportFailure{Index: index, Username: username, Reason: reason})
}

func maxFailureDetails() int {
	if config.Cfg == nil || config.Cfg.Import.MaxFailureDetails <= 0 {
		return 50
	}
	return config.Cfg.Import.MaxFailureDetails
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
