package service

import (
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/redis"
	"context"
	"testing"
)

func newStatsServiceForTest(t *testing.T) (StatsService, SnapshotService, *fakeRelationRepo, *fakeSnapshotRepo) {
	t.Helper()
	relationRepo := newFakeRelationRepo()
	snapshotRepo := newFakeSnapshotRepo()
	snapshotSvc := NewSnapshotService(relationRepo, snapshotRepo)
	comparisonSvc := NewComparisonService(relationRepo)
	svc := NewStatsService(comparisonSvc, snapshotSvc)
	return svc, snapshotSvc, relationRepo, snapshotRepo
}

func TestGetStats(t *testing.T) {
	setupTestRedis(t)
	svc, _, relationRepo, snapshotRepo := newStatsServiceForTest(t)

	relationRepo.add(1, consts.KindFollowers, "alice", mustTime(t, "2026-06-01 09:00:00"))
	relationRepo.add(1, consts.KindFollowers, "bob", mustTime(t, "2026-06-01 18:00:00"))
	relationRepo.add(1, consts.KindFollowers, "carol", mustTime(t, "2026-06-03 12:00:00"))
	relationRepo.add(1, consts.KindFollowing, "alice", mustTime(t, "2026-06-02 10:00:00"))
	relationRepo.add(1, consts.KindFollowing, "dave", mustTime(t, "2026-06-04 10:00:00"))
	seedSnapshot(t, snapshotRepo, 1, "2026-06-01", 100, 40)
	seedSnapshot(t, snapshotRepo, 1, "2026-06-08", 110, 40)

	stats, err := svc.GetStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalFollowers != 3 || stats.TotalFollowing != 2 {
		t.Errorf("totals = %d/%d, want 3/2", stats.TotalFollowers, stats.TotalFollowing)
	}
	if stats.MutualsCount != 1 || stats.FollowersOnlyCount != 2 || stats.FollowingOnlyCount != 1 {
		t.Errorf("partition = %d/%d/%d, want 1/2/1",
			stats.MutualsCount, stats.FollowersOnlyCount, stats.FollowingOnlyCount)
	}
	if stats.FollowerRatio == nil || *stats.FollowerRatio != 1.5 {
		t.Errorf("ratio = %v, want 1.5", stats.FollowerRatio)
	}

	if len(stats.WeeklyGrowth) != 1 {
		t.Fatalf("weekly growth points = %d, want 1", len(stats.WeeklyGrowth))
	}
	if stats.WeeklyGrowth[0].PeriodLabel != "2026-W24" || stats.WeeklyGrowth[0].Delta != 10 {
		t.Errorf("weekly[0] = %+v, want 2026-W24 +10", stats.WeeklyGrowth[0])
	}
	if len(stats.MonthlyGrowth) != 0 {
		t.Errorf("monthly growth should be empty with one month of history, got %d points", len(stats.MonthlyGrowth))
	}

	if len(stats.TopAcquisitionDates) != 2 {
		t.Fatalf("top dates = %d, want 2", len(stats.TopAcquisitionDates))
	}
	if stats.TopAcquisitionDates[0].Date != "2026-06-01" || stats.TopAcquisitionDates[0].FollowersGained != 2 {
		t.Errorf("top[0] = %+v, want 2026-06-01 gained 2", stats.TopAcquisitionDates[0])
	}
	if stats.TopAcquisitionDates[1].Date != "2026-06-03" || stats.TopAcquisitionDates[1].FollowersGained != 1 {
		t.Errorf("top[1] = %+v, want 2026-06-03 gained 1", stats.TopAcquisitionDates[1])
	}
}

func TestGetStatsRatioNilWithoutFollowing(t *testing.T) {
	setupTestRedis(t)
	svc, _, relationRepo, _ := newStatsServiceForTest(t)

	relationRepo.add(1, consts.KindFollowers, "alice", mustTime(t, "2026-06-01 09:00:00"))

	stats, err := svc.GetStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.FollowerRatio != nil {
		t.Errorf("ratio = %v, want nil when following is empty", *stats.FollowerRatio)
	}
}

func TestGetStatsEmptyAccount(t *testing.T) {
	setupTestRedis(t)
	svc, _, _, _ := newStatsServiceForTest(t)

	stats, err := svc.GetStats(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalFollowers != 0 || stats.TotalFollowing != 0 || stats.MutualsCount != 0 {
		t.Errorf("empty account should yield zero counts, got %+v", stats)
	}
	if stats.FollowerRatio != nil {
		t.Error("empty account ratio should be nil")
	}
	if len(stats.WeeklyGrowth) != 0 || len(stats.MonthlyGrowth) != 0 || len(stats.TopAcquisitionDates) != 0 {
		t.Error("empty account should yield empty growth and top-date lists")
	}
}

func TestGetStatsServedFromCache(t *testing.T) {
	setupTestRedis(t)
	svc, _, relationRepo, _ := newStatsServiceForTest(t)

	relationRepo.add(1, consts.KindFollowers, "alice", mustTime(t, "2026-06-01 09:00:00"))

	first, err := svc.GetStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("first GetStats failed: %v", err)
	}
	if first.TotalFollowers != 1 {
		t.Fatalf("first totals = %d, want 1", first.TotalFollowers)
	}
	cached, err := redis.GetRdbClient().Get(context.Background(), consts.RelationStatsKey+"1").Result()
	if err != nil || cached == "" {
		t.Fatalf("stats should be cached after the first read, got %q err %v", cached, err)
	}

	relationRepo.add(1, consts.KindFollowers, "bob", mustTime(t, "2026-06-02 09:00:00"))

	second, err := svc.GetStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("second GetStats failed: %v", err)
	}
	if second.TotalFollowers != 1 {
		t.Errorf("cached read totals = %d, want the stale 1", second.TotalFollowers)
	}
}

func TestGetStatsRecomputedAfterSnapshot(t *testing.T) {
	setupTestRedis(t)
	svc, snapshotSvc, relationRepo, _ := newStatsServiceForTest(t)

	relationRepo.add(1, consts.KindFollowers, "alice", mustTime(t, "2026-06-01 09:00:00"))
	if _, err := svc.GetStats(context.Background(), 1); err != nil {
		t.Fatalf("warm-up GetStats failed: %v", err)
	}

	relationRepo.add(1, consts.KindFollowers, "bob", mustTime(t, "2026-06-02 09:00:00"))
	if _, err := snapshotSvc.RecordSnapshot(context.Background(), 1); err != nil {
		t.Fatalf("RecordSnapshot failed: %v", err)
	}

	stats, err := svc.GetStats(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalFollowers != 2 {
		t.Errorf("totals after snapshot = %d, want fresh 2", stats.TotalFollowers)
	}
}

func TestFollowerRatioRounding(t *testing.T) {
	tests := []struct {
		followers int
		following int
		want      float64
	}{
		{2, 3, 0.67},
		{1, 3, 0.33},
		{10, 4, 2.5},
		{7, 7, 1},
		{0, 5, 0},
		{1, 7, 0.14},
	}
	for _, tt := range tests {
		got := followerRatio(tt.followers, tt.following)
		if got == nil {
			t.Errorf("followerRatio(%d, %d) = nil, want %v", tt.followers, tt.following, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("followerRatio(%d, %d) = %v, want %v", tt.followers, tt.following, *got, tt.want)
		}
	}

	if followerRatio(5, 0) != nil {
		t.Error("followerRatio with zero following should be nil")
	}
}
