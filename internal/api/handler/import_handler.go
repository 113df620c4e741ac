package handler

import (
	"Fanscope/internal/api/dto"
	"Fanscope/internal/pkg/response"
	"Fanscope/internal/pkg/util"
	"Fanscope/internal/service"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importSvc service.ImportService
}

func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

func (s *ImportHandler) ImportRelations(c *gin.Context) {
	var req dto.ImportRequest
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
	result, err := s.importSvc.ImportRelations(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ImportHandler) GetImportRuns(c *gin.Context) {
	ownerID, err := parseOwnerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, pageSize := getPagination(c)

	list, count, err := s.importSvc.GetImportRunList(c.Request.Context(), ownerID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, buildPageResult(count, page, pageSize, list))
}
