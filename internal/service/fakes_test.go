package service

import (
	"Fanscope/internal/api/config"
	"Fanscope/internal/model"
	"Fanscope/internal/pkg/redis"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

// fakeRelationRepo 内存版关系仓储，行为对齐 MySQL 实现：
// 批内同名后写覆盖先写，列表按 date_followed 倒序 + username 升序
type fakeRelationRepo struct {
	mu   sync.Mutex
	rows map[uint64]map[string]map[string]time.Time
	err  error
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{rows: make(map[uint64]map[string]map[string]time.Time)}
}

func (f *fakeRelationRepo) kindRows(ownerID uint64, kind string) map[string]time.Time {
	if f.rows[ownerID] == nil {
		f.rows[ownerID] = make(map[string]map[string]time.Time)
	}
	if f.rows[ownerID][kind] == nil {
		f.rows[ownerID][kind] = make(map[string]time.Time)
	}
	return f.rows[ownerID][kind]
}

func (f *fakeRelationRepo) add(ownerID uint64, kind, username string, date time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kindRows(ownerID, kind)[username] = date
}

func (f *fakeRelationRepo) UpsertBatch(ctx context.Context, ownerID uint64, kind string, pairs []model.RelationPair) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.kindRows(ownerID, kind)
	for _, p := range pairs {
		rows[p.Username] = p.DateFollowed
	}
	return nil
}

func (f *fakeRelationRepo) ListDatePairs(ctx context.Context, ownerID uint64, kind string) ([]model.RelationPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.kindRows(ownerID, kind)
	pairs := make([]model.RelationPair, 0, len(rows))
	for username, date := range rows {
		pairs = append(pairs, model.RelationPair{Username: username, DateFollowed: date})
	}
	return pairs, nil
}

func (f *fakeRelationRepo) ListByOwner(ctx context.Context, ownerID uint64, kind, search string, limit, offset int) ([]model.RelationPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.kindRows(ownerID, kind)
	pairs := make([]model.RelationPair, 0, len(rows))
	for username, date := range rows {
		if search != "" && !strings.Contains(username, search) {
			continue
		}
		pairs = append(pairs, model.RelationPair{Username: username, DateFollowed: date})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if !pairs[i].DateFollowed.Equal(pairs[j].DateFollowed) {
			return pairs[i].DateFollowed.After(pairs[j].DateFollowed)
		}
		return pairs[i].Username < pairs[j].Username
	})
	if offset >= len(pairs) {
		return []model.RelationPair{}, nil
	}
	end := offset + limit
	if end > len(pairs) {
		end = len(pairs)
	}
	return pairs[offset:end], nil
}

func (f *fakeRelationRepo) CountByOwner(ctx context.Context, ownerID uint64, kind, search string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := int64(0)
	for username := range f.kindRows(ownerID, kind) {
		if search != "" && !strings.Contains(username, search) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeRelationRepo) DeleteByOwner(ctx context.Context, ownerID uint64, kind string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	deleted := int64(len(f.kindRows(ownerID, kind)))
	f.rows[ownerID][kind] = make(map[string]time.Time)
	return deleted, nil
}

func (f *fakeRelationRepo) TopAcquisitionDates(ctx context.Context, ownerID uint64, kind string, limit int) ([]model.AcquisitionDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	grouped := make(map[time.Time]int)
	for _, date := range f.kindRows(ownerID, kind) {
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		grouped[day]++
	}
	result := make([]model.AcquisitionDate, 0, len(grouped))
	for day, gained := range grouped {
		result = append(result, model.AcquisitionDate{Date: day, FollowersGained: gained})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FollowersGained != result[j].FollowersGained {
			return result[i].FollowersGained > result[j].FollowersGained
		}
		return result[i].Date.Before(result[j].Date)
	})
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeRelationRepo) DistinctOwnerIDs(ctx context.Context) ([]uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint64, 0, len(f.rows))
	for ownerID, kinds := range f.rows {
		total := 0
		for _, rows := range kinds {
			total += len(rows)
		}
		if total > 0 {
			ids = append(ids, ownerID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// fakeSnapshotRepo 内存版快照仓储，同账号同日期覆盖
type fakeSnapshotRepo struct {
	mu    sync.Mutex
	snaps map[uint64]map[string]*model.Snapshot
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{snaps: make(map[uint64]map[string]*model.Snapshot)}
}

func (f *fakeSnapshotRepo) SaveOrUpdateSnapshot(ctx context.Context, snap *model.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snaps[snap.OwnerID] == nil {
		f.snaps[snap.OwnerID] = make(map[string]*model.Snapshot)
	}
	stored := *snap
	f.snaps[snap.OwnerID][snap.SnapshotDate.Format("2006-01-02")] = &stored
	return nil
}

func (f *fakeSnapshotRepo) GetSnapshotsByOwner(ctx context.Context, ownerID uint64) ([]*model.Snapshot, error) {
	return f.GetSnapshotsSince(ctx, ownerID, time.Time{})
}

func (f *fakeSnapshotRepo) GetSnapshotsSince(ctx context.Context, ownerID uint64, since time.Time) ([]*model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snaps := make([]*model.Snapshot, 0)
	for _, snap := range f.snaps[ownerID] {
		if snap.SnapshotDate.Before(since) {
			continue
		}
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].SnapshotDate.Before(snaps[j].SnapshotDate) })
	return snaps, nil
}

func (f *fakeSnapshotRepo) GetLatestSnapshot(ctx context.Context, ownerID uint64) (*model.Snapshot, error) {
	snaps, err := f.GetSnapshotsByOwner(ctx, ownerID)
	if err != nil || len(snaps) == 0 {
		return nil, err
	}
	return snaps[len(snaps)-1], nil
}

// setupTestRedis 起一个进程内 Redis 并把全局客户端指过去
func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	if err := redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}); err != nil {
		t.Fatalf("init redis: %v", err)
	}
	return mr
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
