package repository

import (
	"Fanscope/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepo interface {
	SaveOrUpdateSnapshot(ctx context.Context, snap *model.Snapshot) error
	GetSnapshotsByOwner(ctx context.Context, ownerID uint64) ([]*model.Snapshot, error)
	GetSnapshotsSince(ctx context.Context, ownerID uint64, since time.Time) ([]*model.Snapshot, error)
	GetLatestSnapshot(ctx context.Context, ownerID uint64) (*model.Snapshot, error)
}

type snapshotRepoImpl struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepo {
	return &snapshotRepoImpl{db: db}
}

// SaveOrUpdateSnapshot 同一账号同一天的快照只保留一份，冲突时覆盖计数
func (s *snapshotRepoImpl) SaveOrUpdateSnapshot(ctx context.Context, snap *model.Snapshot) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"follower_count", "following_count"}),
	}).Create(snap).Error
}

func (s *snapshotRepoImpl) GetSnapshotsByOwner(ctx context.Context, ownerID uint64) ([]*model.Snapshot, error) {
	snaps := make([]*model.Snapshot, 0)
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("snapshot_date ASC").
		Find(&snaps)
	if result.Error != nil {
		return nil, result.Error
	}
	return snaps, nil
}

func (s *snapshotRepoImpl) GetSnapshotsSince(ctx context.Context, ownerID uint64, since time.Time) ([]*model.Snapshot, error) {
	snaps := make([]*model.Snapshot, 0)
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("snapshot_date >= ?", since).
		Order("snapshot_date ASC").
		Find(&snaps)
	if result.Error != nil {
		return nil, result.Error
	}
	return snaps, nil
}

func (s *snapshotRepoImpl) GetLatestSnapshot(ctx context.Context, ownerID uint64) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("snapshot_date DESC").
		First(&snap).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}
