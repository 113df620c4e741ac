package kafka

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/service"
	"context"
	"testing"

	"github.com/IBM/sarama"
)

type fakeImportService struct {
	lastReq *dto.ImportRequest
	calls   int
	err     error
}

func (f *fakeImportService) ImportRelations(ctx context.Context, req *dto.ImportRequest) (*dto.ImportResult, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ImportResult{Created: len(req.Entries)}, nil
}

func (f *fakeImportService) GetImportRunList(ctx context.Context, ownerID uint64, page, pageSize int) ([]*dto.ImportRunDTO, int64, error) {
	return nil, 0, nil
}

func TestLogicProcessesMessage(t *testing.T) {
	svc := &fakeImportService{}
	handler := NewRelationImportHandler(svc)

	msg := &sarama.ConsumerMessage{Value: []byte(`{
		"owner_id": 7,
		"kind": "followers",
		"source": "export-20260601.zip",
		"entries": [
			{"username": "alice", "date_followed": "2026-06-01 09:00:00"},
			{"username": "bob", "date_followed": "2026-06-02"}
		]
	}`)}

	if err := handler.logic(context.Background(), msg); err != nil {
		t.Fatalf("logic failed: %v", err)
	}
	if svc.calls != 1 {
		t.Fatalf("import called %d times, want 1", svc.calls)
	}
	req := svc.lastReq
	if req.OwnerID != 7 || req.Kind != "followers" || req.Source != "export-20260601.zip" {
		t.Errorf("request header mapped wrong: %+v", req)
	}
	if len(req.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(req.Entries))
	}
	if req.Entries[0].Username != "alice" || req.Entries[0].DateFollowed != "2026-06-01 09:00:00" {
		t.Errorf("entries[0] mapped wrong: %+v", req.Entries[0])
	}
}

func TestLogicSkipsMalformedMessage(t *testing.T) {
	svc := &fakeImportService{}
	handler := NewRelationImportHandler(svc)

	msg := &sarama.ConsumerMessage{Value: []byte(`{"owner_id": not-json`)}
	if err := handler.logic(context.Background(), msg); err != nil {
		t.Errorf("malformed message should be skipped, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("import should not run for malformed message, ran %d times", svc.calls)
	}
}

func TestLogicSkipsMissingOwner(t *testing.T) {
	svc := &fakeImportService{}
	handler := NewRelationImportHandler(svc)

	msg := &sarama.ConsumerMessage{Value: []byte(`{"kind": "followers", "entries": []}`)}
	if err := handler.logic(context.Background(), msg); err != nil {
		t.Errorf("message without owner_id should be skipped, got %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("import should not run without owner_id, ran %d times", svc.calls)
	}
}

func TestLogicSkipsInvalidKind(t *testing.T) {
	svc := &fakeImportService{err: service.ErrKindInvalid}
	handler := NewRelationImportHandler(svc)

	msg := &sarama.ConsumerMessage{Value: []byte(`{"owner_id": 7, "kind": "friends", "entries": []}`)}
	if err := handler.logic(context.Background(), msg); err != nil {
		t.Errorf("invalid kind is a poison message, should be skipped, got %v", err)
	}
}

func TestLogicReturnsTransientError(t *testing.T) {
	svc := &fakeImportService{err: service.ErrImportInProgress}
	handler := NewRelationImportHandler(svc)

	msg := &sarama.ConsumerMessage{Value: []byte(`{"owner_id": 7, "kind": "followers", "entries": []}`)}
	if err := handler.logic(context.Background(), msg); err == nil {
		t.Error("lock conflict should bubble up to trigger a retry")
	}
}
