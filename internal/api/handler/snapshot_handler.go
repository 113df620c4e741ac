package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/pkg/util"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	snapshotSvc service.SnapshotService
}

func NewSnapshotHandler(snapshotSvc service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotSvc: snapshotSvc}
}

// RecordSnapshot 手动触发一次当日计数快照
func (s *SnapshotHandler) RecordSnapshot(c *gin.Context) {
	var req dto.SnapshotRequest
	err := c.ShouldBind(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	err = util.ValidateDTO(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	snapshot, err := s.snapshotSvc.RecordSnapshot(c.Request.Context(), req.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.SnapshotDTO{
		OwnerID:        snapshot.OwnerID,
		SnapshotDate:   snapshot.SnapshotDate.Format("2006-01-02"),
		FollowerCount:  snapshot.FollowerCount,
		FollowingCount: snapshot.FollowingCount,
	})
}

func (s *SnapshotHandler) GetGrowth(c *gin.Context) {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	granularity := c.DefaultQuery("granularity", consts.GranularityWeek)

	points, err := s.snapshotSvc.GrowthBetween(c.Request.Context(), ownerID, granularity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}

func (s *SnapshotHandler) GetGrowthDetail(c *gin.Context) {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	period := c.DefaultQuery("period", consts.GrowthPeriodAll)

	points, err := s.snapshotSvc.GrowthDetail(c.Request.Context(), ownerID, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}
