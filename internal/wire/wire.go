package wire

import (
	"Fanscope/internal/api"
	"Fanscope/internal/api/config"
	"Fanscope/internal/api/handler"
	"Fanscope/internal/job"
	"Fanscope/internal/pkg/cron"
	"Fanscope/internal/pkg/kafka"
	pkgmongo "Fanscope/internal/pkg/mongo"
	"Fanscope/internal/repository"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	relationRepo := repository.NewRelationRepo(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	importRunRepo := pkgmongo.NewImportRunRepo(mongoDB)

	snapshotService := service.NewSnapshotService(relationRepo, snapshotRepo)
	comparisonService := service.NewComparisonService(relationRepo)
	importService := service.NewImportService(relationRepo, snapshotService, importRunRepo)
	statsService := service.NewStatsService(comparisonService, snapshotService)
	relationService := service.NewRelationService(relationRepo)

	handlers := &api.HandlersGroup{
		ImportHandler:     handler.NewImportHandler(importService),
		ComparisonHandler: handler.NewComparisonHandler(comparisonService),
		StatsHandler:      handler.NewStatsHandler(statsService),
		SnapshotHandler:   handler.NewSnapshotHandler(snapshotService),
		RelationHandler:   handler.NewRelationHandler(relationService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, importService)
	if err != nil {
		return nil, err
	}

	snapshotJob := job.NewSnapshotJob(relationRepo, snapshotService)
	cronMgr := cron.NewCronManager(snapshotJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
