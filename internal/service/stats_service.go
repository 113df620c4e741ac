package service

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/pkg/util"
	"context"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const statsTopDatesLimit = 5

type StatsService interface {
	GetStats(ctx context.Context, ownerID uint64) (*dto.FollowerStats, error)
}

type statsServiceImpl struct {
	comparisonSvc ComparisonService
	snapshotSvc   SnapshotService
}

func NewStatsService(comparisonSvc ComparisonService, snapshotSvc SnapshotService) StatsService {
	return &statsServiceImpl{
		comparisonSvc: comparisonSvc,
		snapshotSvc:   snapshotSvc,
	}
}

// GetStats 汇总统计总览。任何一个子计算失败整个调用就失败，
// 不会吐出缺字段的半成品。导入和快照写入都会把缓存打掉
func (s *statsServiceImpl) GetStats(ctx context.Context, ownerID uint64) (*dto.FollowerStats, error) {
	key := consts.RelationStatsKey + strconv.FormatUint(ownerID, 10)
	cached, err := redis.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != "" {
		var stats *dto.FollowerStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	summary, err := s.comparisonSvc.GetComparisonSummary(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	weekly, err := s.snapshotSvc.GrowthBetween(ctx, ownerID, consts.GranularityWeek)
	if err != nil {
		return nil, err
	}
	monthly, err := s.snapshotSvc.GrowthBetween(ctx, ownerID, consts.GranularityMonth)
	if err != nil {
		return nil, err
	}
	topDates, err := s.snapshotSvc.TopAcquisitionDates(ctx, ownerID, statsTopDatesLimit)
	if err != nil {
		return nil, err
	}

	stats := &dto.FollowerStats{
		TotalFollowers:      summary.TotalFollowers,
		TotalFollowing:      summary.TotalFollowing,
		FollowerRatio:       followerRatio(summary.TotalFollowers, summary.TotalFollowing),
		MutualsCount:        summary.MutualsCount,
		FollowersOnlyCount:  summary.FollowersOnlyCount,
		FollowingOnlyCount:  summary.FollowingOnlyCount,
		WeeklyGrowth:        weekly,
		MonthlyGrowth:       monthly,
		TopAcquisitionDates: topDates,
	}
	s.cacheStats(ctx, key, stats)
	return stats, nil
}

// followerRatio 关注数为 0 时比值无定义，返回 nil 而不是除零
func followerRatio(followers, following int) *float64 {
	if following == 0 {
		return nil
	}
	return util.PtrFloat64(math.Round(float64(followers)/float64(following)*100) / 100)
}

func (s *statsServiceImpl) cacheStats(ctx context.Context, key string, stats *dto.FollowerStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}

	// 计算距离午夜的时间，提前5分钟过期
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	expiration := time.Until(midnight) - time.Minute*5
	if expiration < 0 {
		return
	}
	_ = redis.SetWithExpiration(ctx, key, string(payload), expiration)
}
