package service

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/repository"
	"context"
	"sort"
	"time"
)

// ctxCheckInterval 大集合遍历时每隔多少行检查一次调用方超时
const ctxCheckInterval = 1024

type ComparisonService interface {
	Compare(ctx context.Context, ownerID uint64, mode string, page, pageSize int) ([]*dto.ComparisonEntry, int64, error)
	GetComparisonSummary(ctx context.Context, ownerID uint64) (*dto.ComparisonSummary, error)
}

type comparisonServiceImpl struct {
	relationRepo repository.RelationRepo
}

func NewComparisonService(relationRepo repository.RelationRepo) ComparisonService {
	return &comparisonServiceImpl{relationRepo: relationRepo}
}

type comparisonRow struct {
	username     string
	followedAt   time.Time
	followingAt  time.Time
	hasFollowed  bool
	hasFollowing bool
	latest       time.Time
	isMutual     bool
}

// Compare 用两侧 username 集合做哈希求交/差，整体排序后再分页。
// 排序键是两个时间里较近的一个，倒序，相同时间按 username 升序保证翻页稳定
func (s *comparisonServiceImpl) Compare(ctx context.Context, ownerID uint64, mode string, page, pageSize int) ([]*dto.ComparisonEntry, int64, error) {
	switch mode {
	case consts.CompareModeMutual, consts.CompareModeFollowersOnly, consts.CompareModeFollowingOnly:
	default:
		return nil, 0, ErrCompareModeInvalid
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	followers, following, err := s.loadSides(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := buildComparisonRows(ctx, followers, following, mode)
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].latest.Equal(rows[j].latest) {
			return rows[i].latest.After(rows[j].latest)
		}
		return rows[i].username < rows[j].username
	})

	total := int64(len(rows))
	offset := (page - 1) * pageSize
	if offset >= len(rows) {
		return make([]*dto.ComparisonEntry, 0), total, nil
	}
	end := offset + pageSize
	if end > len(rows) {
		end = len(rows)
	}

	entries := make([]*dto.ComparisonEntry, 0, end-offset)
	for _, row := range rows[offset:end] {
		entry := &dto.ComparisonEntry{
			Username: row.username,
			IsMutual: row.isMutual,
		}
		if row.hasFollowed {
			formatted := row.followedAt.Format("2006-01-02 15:04:05")
			entry.DateFollowed = &formatted
		}
		if row.hasFollowing {
			formatted := row.followingAt.Format("2006-01-02 15:04:05")
			entry.DateFollowing = &formatted
		}
		entries = append(entries, entry)
	}
	return entries, total, nil
}

// GetComparisonSummary 一次遍历算出全部集合大小，给统计接口用，
// 避免三种模式各自全量对比一遍
func (s *comparisonServiceImpl) GetComparisonSummary(ctx context.Context, ownerID uint64) (*dto.ComparisonSummary, error) {
	followers, following, err := s.loadSides(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// 遍历较小的一侧数互关，两个差集大小用总数减出来
	small, large := followers, following
	if len(following) < len(followers) {
		small, large = following, followers
	}
	mutuals := 0
	i := 0
	for username := range small {
		i++
		if i%ctxCheckInterval == 0 && ctx.Err() != nil {
			return nil, ErrComputeTimeout
		}
		if _, ok := large[username]; ok {
			mutuals++
		}
	}

	return &dto.ComparisonSummary{
		TotalFollowers:     len(followers),
		TotalFollowing:     len(following),
		MutualsCount:       mutuals,
		FollowersOnlyCount: len(followers) - mutuals,
		FollowingOnlyCount: len(following) - mutuals,
	}, nil
}

func (s *comparisonServiceImpl) loadSides(ctx context.Context, ownerID uint64) (map[string]time.Time, map[string]time.Time, error) {
	followerPairs, err := s.relationRepo.ListDatePairs(ctx, ownerID, consts.KindFollowers)
	if err != nil {
		return nil, nil, err
	}
	followingPairs, err := s.relationRepo.ListDatePairs(ctx, ownerID, consts.KindFollowing)
	if err != nil {
		return nil, nil, err
	}

	followers := make(map[string]time.Time, len(followerPairs))
	for _, p := range followerPairs {
		followers[p.Username] = p.DateFollowed
	}
	following := make(map[string]time.Time, len(followingPairs))
	for _, p := range followingPairs {
		following[p.Username] = p.DateFollowed
	}
	return followers, following, nil
}

func buildComparisonRows(ctx context.Context, followers, following map[string]time.Time, mode string) ([]comparisonRow, error) {
	rows := make([]comparisonRow, 0)
	i := 0

	switch mode {
	case consts.CompareModeMutual:
		for username, followedAt := range followers {
			i++
			if i%ctxCheckInterval == 0 && ctx.Err() != nil {
				return nil, ErrComputeTimeout
			}
			followingAt, ok := following[username]
			if !ok {
				continue
			}
			latest := followedAt
			if followingAt.After(latest) {
				latest = followingAt
			}
			rows = append(rows, comparisonRow{
				username:     username,
				followedAt:   followedAt,
				followingAt:  followingAt,
				hasFollowed:  true,
				hasFollowing: true,
				latest:       latest,
				isMutual:     true,
			})
		}
	case consts.CompareModeFollowersOnly:
		for username, followedAt := range followers {
			i++
			if i%ctxCheckInterval == 0 && ctx.Err() != nil {
				return nil, ErrComputeTimeout
			}
			if _, ok := following[username]; ok {
				continue
			}
			rows = append(rows, comparisonRow{
				username:    username,
				followedAt:  followedAt,
				hasFollowed: true,
				latest:      followedAt,
			})
		}
	case consts.CompareModeFollowingOnly:
		for username, followingAt := range following {
			i++
			if i%ctxCheckInterval == 0 && ctx.Err() != nil {
				return nil, ErrComputeTimeout
			}
			if _, ok := followers[username]; ok {
				continue
			}
			rows = append(rows, comparisonRow{
				username:     username,
				followingAt:  followingAt,
				hasFollowing: true,
				latest:       followingAt,
			})
		}
	}
	return rows, nil
}
