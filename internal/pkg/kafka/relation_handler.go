package kafka

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type RelationImportHandler struct {
	importSvc service.ImportService
}

func NewRelationImportHandler(importSvc service.ImportService) *RelationImportHandler {
	return &RelationImportHandler{importSvc: importSvc}
}

func (s *RelationImportHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("relation import consumer setup")
	return nil
}

func (s *RelationImportHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("relation import consumer cleanup")
	return nil
}

func (s *RelationImportHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-relation-import consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-relation-import process batch error", "err", err)
		return err
	}
	log.Info("topic-relation-import consume claim end")
	return nil
}

// logic 解析一条导入消息并整批落库。
// 消息本身有问题（解析失败、owner 缺失、kind 非法）直接跳过，
// 锁冲突和落库失败返回错误走重试
func (s *RelationImportHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var importMsg RelationImportMessage
	if err := json.Unmarshal(msg.Value, &importMsg); err != nil {
		log.ErrorContext(ctx, "unmarshal relation import message error", "err", err)
		return nil
	}
	if importMsg.OwnerID == 0 {
		log.WarnContext(ctx, "relation import message missing owner_id")
		return nil
	}

	req := &dto.ImportRequest{
		OwnerID: importMsg.OwnerID,
		Kind:    importMsg.Kind,
		Source:  importMsg.Source,
		Entries: make([]dto.ImportEntry, 0, len(importMsg.Entries)),
	}
	for _, entry := range importMsg.Entries {
		req.Entries = append(req.Entries, dto.ImportEntry{
			Username:     entry.Username,
			DateFollowed: entry.DateFollowed,
		})
	}

	result, err := s.importSvc.ImportRelations(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrKindInvalid) || errors.Is(err, service.ErrParamInvalid) {
			log.WarnContext(ctx, "skip invalid relation import message",
				"owner_id", importMsg.OwnerID,
				"kind", importMsg.Kind,
				"err", err,
			)
			return nil
		}
		return errors.Wrap(err, "import relations from kafka")
	}

	log.InfoContext(ctx, "relation import message processed",
		"owner_id", importMsg.OwnerID,
		"kind", importMsg.Kind,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return nil
}
