package handler

import (
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type ComparisonHandler struct {
	comparisonSvc service.ComparisonService
}

func NewComparisonHandler(comparisonSvc service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisonSvc: comparisonSvc}
}

// Compare 按 mode 返回两个关系列表的交集或差集
func (s *ComparisonHandler) Compare(c *gin.Context) {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	mode := c.DefaultQuery("mode", consts.CompareModeMutual)
	page, pageSize := getPagination(c)

	entries, count, err := s.comparisonSvc.Compare(c.Request.Context(), ownerID, mode, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, buildPageResult(count, page, pageSize, entries))
}
