package service

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/repository"
	"context"
	"fmt"
	"strconv"
	"time"
)

const defaultTopDatesLimit = 5

type SnapshotService interface {
	RecordSnapshot(ctx context.Context, ownerID uint64) (*model.Snapshot, error)
	GrowthBetween(ctx context.Context, ownerID uint64, granularity string) ([]*dto.GrowthPoint, error)
	TopAcquisitionDates(ctx context.Context, ownerID uint64, limit int) ([]*dto.AcquisitionDateDTO, error)
	GrowthDetail(ctx context.Context, ownerID uint64, period string) ([]*dto.GrowthDetailPoint, error)
}

type snapshotServiceImpl struct {
	relationRepo repository.RelationRepo
	snapshotRepo repository.SnapshotRepo
}

func NewSnapshotService(relationRepo repository.RelationRepo, snapshotRepo repository.SnapshotRepo) SnapshotService {
	return &snapshotServiceImpl{
		relationRepo: relationRepo,
		snapshotRepo: snapshotRepo,
	}
}

// RecordSnapshot 记录当天的粉丝/关注计数。同一天重复触发只会覆盖计数
func (s *snapshotServiceImpl) RecordSnapshot(ctx context.Context, ownerID uint64) (*model.Snapshot, error) {
	followerCount, err := s.relationRepo.CountByOwner(ctx, ownerID, consts.KindFollowers, "")
	if err != nil {
		return nil, err
	}
	followingCount, err := s.relationRepo.CountByOwner(ctx, ownerID, consts.KindFollowing, "")
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		OwnerID:        ownerID,
		SnapshotDate:   getMidnight(time.Now()),
		FollowerCount:  int(followerCount),
		FollowingCount: int(followingCount),
	}
	if err := s.snapshotRepo.SaveOrUpdateSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	invalidateStatsCache(ctx, ownerID)
	return snap, nil
}

func (s *snapshotServiceImpl) GrowthBetween(ctx context.Context, ownerID uint64, granularity string) ([]*dto.GrowthPoint, error) {
	if granularity != consts.GranularityWeek && granularity != consts.GranularityMonth {
		return nil, ErrGranularityInvalid
	}
	snaps, err := s.snapshotRepo.GetSnapshotsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return buildGrowthPoints(snaps, granularity), nil
}

func (s *snapshotServiceImpl) TopAcquisitionDates(ctx context.Context, ownerID uint64, limit int) ([]*dto.AcquisitionDateDTO, error) {
	if limit <= 0 {
		limit = defaultTopDatesLimit
	}
	rows, err := s.relationRepo.TopAcquisitionDates(ctx, ownerID, consts.KindFollowers, limit)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.AcquisitionDateDTO, 0, len(rows))
	for _, row := range rows {
		list = append(list, &dto.AcquisitionDateDTO{
			Date:            row.Date.Format("2006-01-02"),
			FollowersGained: row.FollowersGained,
		})
	}
	return list, nil
}

// GrowthDetail 逐快照的明细曲线，第一条基准点全为 0
func (s *snapshotServiceImpl) GrowthDetail(ctx context.Context, ownerID uint64, period string) ([]*dto.GrowthDetailPoint, error) {
	var snaps []*model.Snapshot
	var err error
	switch period {
	case consts.GrowthPeriodWeek:
		snaps, err = s.snapshotRepo.GetSnapshotsSince(ctx, ownerID, getMidnight(time.Now()).AddDate(0, 0, -7))
	case consts.GrowthPeriodMonth:
		snaps, err = s.snapshotRepo.GetSnapshotsSince(ctx, ownerID, getMidnight(time.Now()).AddDate(0, -1, 0))
	case consts.GrowthPeriodYear:
		snaps, err = s.snapshotRepo.GetSnapshotsSince(ctx, ownerID, getMidnight(time.Now()).AddDate(-1, 0, 0))
	case consts.GrowthPeriodAll:
		snaps, err = s.snapshotRepo.GetSnapshotsByOwner(ctx, ownerID)
	default:
		return nil, ErrGrowthPeriodInvalid
	}
	if err != nil {
		return nil, err
	}

	points := make([]*dto.GrowthDetailPoint, 0, len(snaps))
	var prev *model.Snapshot
	for _, snap := range snaps {
		point := &dto.GrowthDetailPoint{
			Date:           snap.SnapshotDate.Format("2006-01-02"),
			FollowerCount:  snap.FollowerCount,
			FollowingCount: snap.FollowingCount,
		}
		if prev != nil {
			net := snap.FollowerCount - prev.FollowerCount
			point.Net = net
			if net > 0 {
				point.Gained = net
			} else {
				point.Lost = -net
			}
		}
		points = append(points, point)
		prev = snap
	}
	return points, nil
}

// buildGrowthPoints 把升序快照折成周期序列，每个周期取最后一张快照作为代表值，
// 再算相邻周期之间的粉丝数差
func buildGrowthPoints(snaps []*model.Snapshot, granularity string) []*dto.GrowthPoint {
	points := make([]*dto.GrowthPoint, 0)
	if len(snaps) < 2 {
		return points
	}

	labels := make([]string, 0)
	reps := make(map[string]*model.Snapshot)
	for _, snap := range snaps {
		label := periodLabel(snap.SnapshotDate, granularity)
		if _, ok := reps[label]; !ok {
			labels = append(labels, label)
		}
		// 升序遍历，最后写入的就是该周期里最晚的快照
		reps[label] = snap
	}

	for i := 1; i < len(labels); i++ {
		prev := reps[labels[i-1]]
		cur := reps[labels[i]]
		points = append(points, &dto.GrowthPoint{
			PeriodLabel: labels[i],
			Delta:       cur.FollowerCount - prev.FollowerCount,
		})
	}
	return points
}

func periodLabel(t time.Time, granularity string) string {
	if granularity == consts.GranularityWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format("2006-01")
}

func invalidateStatsCache(ctx context.Context, ownerID uint64) {
	_ = redis.DeleteKey(ctx, consts.RelationStatsKey+strconv.FormatUint(ownerID, 10))
}

func getMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
