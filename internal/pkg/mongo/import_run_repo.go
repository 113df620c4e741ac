package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ImportRunRepo interface {
	CreateImportRun(ctx context.Context, run *ImportRunModel) error
	GetImportRunList(ctx context.Context, ownerID uint64, limit, offset int64) ([]*ImportRunModel, error)
	GetImportRunCount(ctx context.Context, ownerID uint64) (int64, error)
}

type importRunRepoImpl struct {
	col *mongo.Collection
}

func NewImportRunRepo(db *mongo.Database) ImportRunRepo {
	return &importRunRepoImpl{
		col: db.Collection("import_runs"),
	}
}

// CreateImportRun 插入一条导入审计记录
func (s *importRunRepoImpl) CreateImportRun(ctx context.Context, run *ImportRunModel) error {
	_, err := s.col.InsertOne(ctx, run)
	return err
}

// GetImportRunList 分页获取某账号的导入记录 (按开始时间倒序)
func (s *importRunRepoImpl) GetImportRunList(ctx context.Context, ownerID uint64, limit, offset int64) ([]*ImportRunModel, error) {
	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*ImportRunModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetImportRunCount 获取某账号的导入记录总数
func (s *importRunRepoImpl) GetImportRunCount(ctx context.Context, ownerID uint64) (int64, error) {
	filter := bson.M{"owner_id": ownerID}
	return s.col.CountDocuments(ctx, filter)
}
