package service

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/redis"
	"Fanscope/internal/repository"
	"context"
	"strconv"

	"github.com/google/uuid"
)

type RelationService interface {
	GetRelationList(ctx context.Context, ownerID uint64, kind, search string, page, pageSize int) ([]*dto.RelationItem, int64, error)
	ResetAccount(ctx context.Context, ownerID uint64) (*dto.ResetResult, error)
}

type relationServiceImpl struct {
	relationRepo repository.RelationRepo
}

func NewRelationService(relationRepo repository.RelationRepo) RelationService {
	return &relationServiceImpl{relationRepo: relationRepo}
}

// GetRelationList 分页查某一侧的原始关系行，支持用户名模糊查找
func (s *relationServiceImpl) GetRelationList(ctx context.Context, ownerID uint64, kind, search string, page, pageSize int) ([]*dto.RelationItem, int64, error) {
	if kind != consts.KindFollowers && kind != consts.KindFollowing {
		return nil, 0, ErrKindInvalid
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	offset := (page - 1) * pageSize
	pairs, err := s.relationRepo.ListByOwner(ctx, ownerID, kind, search, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.relationRepo.CountByOwner(ctx, ownerID, kind, search)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.RelationItem, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, &dto.RelationItem{
			Username:     p.Username,
			DateFollowed: p.DateFollowed.Format("2006-01-02 15:04:05"),
		})
	}
	return items, count, nil
}

// ResetAccount 清空账号两侧的关系数据，快照保留。
// 和导入共用同一把锁，清空过程中不允许并发导入
func (s *relationServiceImpl) ResetAccount(ctx context.Context, ownerID uint64) (*dto.ResetResult, error) {
	lockKey := consts.RelationImportLock + strconv.FormatUint(ownerID, 10)
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

	followersDeleted, err := s.relationRepo.DeleteByOwner(ctx, ownerID, consts.KindFollowers)
	if err != nil {
		return nil, err
	}
	followingDeleted, err := s.relationRepo.DeleteByOwner(ctx, ownerID, consts.KindFollowing)
	if err != nil {
		return nil, err
	}
	invalidateStatsCache(ctx, ownerID)

	return &dto.ResetResult{
		FollowersDeleted: followersDeleted,
		FollowingDeleted: followingDeleted,
	}, nil
}
