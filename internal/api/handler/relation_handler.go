package handler

import (
	"strconv"

	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/consts"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/pkg/util"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	relationSvc service.RelationService
}

func NewRelationHandler(relationSvc service.RelationService) *RelationHandler {
	return &RelationHandler{relationSvc: relationSvc}
}

func (s *RelationHandler) GetFollowers(c *gin.Context) {
	s.getRelationList(c, consts.KindFollowers)
}

func (s *RelationHandler) GetFollowing(c *gin.Context) {
	s.getRelationList(c, consts.KindFollowing)
}

func (s *RelationHandler) getRelationList(c *gin.Context, kind string) {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	search := c.Query("search")
	page, pageSize := getPagination(c)

	list, count, err := s.relationSvc.GetRelationList(c.Request.Context(), ownerID, kind, search, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, buildPageResult(count, page, pageSize, list))
}

// ResetAccount 清空指定账号的全部关系数据
func (s *RelationHandler) ResetAccount(c *gin.Context) {
	ownerID, err := strconv.ParseUint(c.Param("owner_id"), 10, 64)
	if err != nil || ownerID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	result, err := s.relationSvc.ResetAccount(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func parseOwnerID(c *gin.Context) (uint64, error) {
	ownerID, err := strconv.ParseUint(c.Query("owner_id"), 10, 64)
	if err != nil || ownerID == 0 {
		return 0, service.ErrParamInvalid
	}
	return ownerID, nil
}

func getPagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

func buildPageResult(count int64, page, pageSize int, results any) *dto.PageResult {
	pageResult := &dto.PageResult{Count: count, Results: results}
	if int64(page*pageSize) < count {
		pageResult.Next = util.PtrInt(page + 1)
	}
	if page > 1 {
		pageResult.Previous = util.PtrInt(page - 1)
	}
	return pageResult
}
