package repository

import (
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/consts"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const upsertBatchSize = 500

type RelationRepo interface {
	UpsertBatch(ctx context.Context, ownerID uint64, kind string, pairs []model.RelationPair) error
	ListDatePairs(ctx context.Context, ownerID uint64, kind string) ([]model.RelationPair, error)
	ListByOwner(ctx context.Context, ownerID uint64, kind, search string, limit, offset int) ([]model.RelationPair, error)
	CountByOwner(ctx context.Context, ownerID uint64, kind, search string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID uint64, kind string) (int64, error)
	TopAcquisitionDates(ctx context.Context, ownerID uint64, kind string, limit int) ([]model.AcquisitionDate, error)
	DistinctOwnerIDs(ctx context.Context) ([]uint64, error)
}

type RelationRepoImpl struct {
	db *gorm.DB
}

func NewRelationRepo(db *gorm.DB) RelationRepo {
	return &RelationRepoImpl{db: db}
}

func relationTable(kind string) string {
	if kind == consts.KindFollowing {
		return model.Following{}.TableName()
	}
	return model.Follower{}.TableName()
}

// UpsertBatch 批量写入某一侧的关系行，(owner_id, username) 冲突时只更新 date_followed。
// 整批在一个事务里落库，调用方负责先去重
func (s *RelationRepoImpl) UpsertBatch(ctx context.Context, ownerID uint64, kind string, pairs []model.RelationPair) error {
	if len(pairs) == 0 {
		return nil
	}
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"date_followed"}),
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if kind == consts.KindFollowing {
			rows := make([]*model.Following, 0, len(pairs))
			for _, p := range pairs {
				rows = append(rows, &model.Following{OwnerID: ownerID, Username: p.Username, DateFollowed: p.DateFollowed})
			}
			return tx.Clauses(onConflict).CreateInBatches(rows, upsertBatchSize).Error
		}
		rows := make([]*model.Follower, 0, len(pairs))
		for _, p := range pairs {
			rows = append(rows, &model.Follower{OwnerID: ownerID, Username: p.Username, DateFollowed: p.DateFollowed})
		}
		return tx.Clauses(onConflict).CreateInBatches(rows, upsertBatchSize).Error
	})
}

// ListDatePairs 拉取指定账号某一侧的全部 username + date_followed
func (s *RelationRepoImpl) ListDatePairs(ctx context.Context, ownerID uint64, kind string) ([]model.RelationPair, error) {
	pairs := make([]model.RelationPair, 0)
	result := s.db.WithContext(ctx).
		Table(relationTable(kind)).
		Select("username, date_followed").
		Where("owner_id = ?", ownerID).
		Find(&pairs)

	if result.Error != nil {
		return nil, result.Error
	}
	return pairs, nil
}

// ListByOwner 分页拉取某一侧的关系行，按获取时间倒序，可选用户名模糊过滤
func (s *RelationRepoImpl) ListByOwner(ctx context.Context, ownerID uint64, kind, search string, limit, offset int) ([]model.RelationPair, error) {
	pairs := make([]model.RelationPair, 0)
	query := s.db.WithContext(ctx).
		Table(relationTable(kind)).
		Select("username, date_followed").
		Where("owner_id = ?", ownerID)
	if search != "" {
		query = query.Where("username LIKE ?", "%"+search+"%")
	}
	result := query.
		Order("date_followed DESC, username ASC").
		Limit(limit).
		Offset(offset).
		Find(&pairs)

	if result.Error != nil {
		return nil, result.Error
	}
	return pairs, nil
}

// CountByOwner 统计某一侧的关系数量，过滤条件与 ListByOwner 保持一致
func (s *RelationRepoImpl) CountByOwner(ctx context.Context, ownerID uint64, kind, search string) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).
		Table(relationTable(kind)).
		Where("owner_id = ?", ownerID)
	if search != "" {
		query = query.Where("username LIKE ?", "%"+search+"%")
	}
	result := query.Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// DeleteByOwner 删除指定账号某一侧的全部关系，返回删除行数
func (s *RelationRepoImpl) DeleteByOwner(ctx context.Context, ownerID uint64, kind string) (int64, error) {
	var result *gorm.DB
	if kind == consts.KindFollowing {
		result = s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.Following{})
	} else {
		result = s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Delete(&model.Follower{})
	}
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// TopAcquisitionDates 按天聚合 date_followed，返回新增最多的日期。
// 数量相同的日期按时间早的排前面
func (s *RelationRepoImpl) TopAcquisitionDates(ctx context.Context, ownerID uint64, kind string, limit int) ([]model.AcquisitionDate, error) {
	rows := make([]model.AcquisitionDate, 0)
	result := s.db.WithContext(ctx).
		Table(relationTable(kind)).
		Select("DATE(date_followed) AS acq_date, COUNT(*) AS gained").
		Where("owner_id = ?", ownerID).
		Group("acq_date").
		Order("gained DESC, acq_date ASC").
		Limit(limit).
		Find(&rows)

	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}

// DistinctOwnerIDs 列出两张关系表里出现过的全部账号 ID，给快照任务遍历用
func (s *RelationRepoImpl) DistinctOwnerIDs(ctx context.Context) ([]uint64, error) {
	var followerOwners []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Follower{}).
		Distinct("owner_id").
		Pluck("owner_id", &followerOwners)
	if result.Error != nil {
		return nil, result.Error
	}

	var followingOwners []uint64
	result = s.db.WithContext(ctx).
		Model(&model.Following{}).
		Distinct("owner_id").
		Pluck("owner_id", &followingOwners)
	if result.Error != nil {
		return nil, result.Error
	}

	seen := make(map[uint64]struct{}, len(followerOwners))
	owners := make([]uint64, 0, len(followerOwners))
	for _, id := range followerOwners {
		seen[id] = struct{}{}
		owners = append(owners, id)
	}
	for _, id := range followingOwners {
		if _, ok := seen[id]; !ok {
			owners = append(owners, id)
		}
	}
	return owners, nil
}
