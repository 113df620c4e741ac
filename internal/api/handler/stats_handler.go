package handler

import (
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsSvc service.StatsService
}

func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

func (s *StatsHandler) GetStats(c *gin.Context) {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := s.statsSvc.GetStats(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
