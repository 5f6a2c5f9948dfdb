package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/application/lifecycle"
	"github.com/xiebiao/library/internal/domain/publisher"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// PublisherHandler 出版社HTTP处理器
type PublisherHandler struct {
	registerUseCase *catalog.RegisterPublisherUseCase
	updateUseCase   *catalog.UpdatePublisherUseCase
	queries         *catalog.Queries
	lifecycle       *lifecycle.Engine
}

// NewPublisherHandler 创建出版社处理器
func NewPublisherHandler(
	registerUseCase *catalog.RegisterPublisherUseCase,
	updateUseCase *catalog.UpdatePublisherUseCase,
	queries *catalog.Queries,
	lifecycleEngine *lifecycle.Engine,
) *PublisherHandler {
	return &PublisherHandler{
		registerUseCase: registerUseCase,
		updateUseCase:   updateUseCase,
		queries:         queries,
		lifecycle:       lifecycleEngine,
	}
}

// Register 登记出版社
// @Summary      登记出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.NameRequest true "出版社信息"
// @Success      200 {object} response.Response{data=dto.PublisherResponse}
// @Router       /api/v1/publishers [post]
func (h *PublisherHandler) Register(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	p, err := h.registerUseCase.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toPublisherResponse(p))
}

// Get 查询出版社
// @Summary      查询出版社
// @Tags         出版社
// @Produce      json
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=dto.PublisherResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/publishers/{id} [get]
func (h *PublisherHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的出版社ID")
		return
	}

	p, err := h.queries.GetPublisher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toPublisherResponse(p))
}

// List 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Param        status query string false "active | inactive" default(active)
// @Success      200 {object} response.Response{data=[]dto.PublisherResponse}
// @Router       /api/v1/publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		publishers []*publisher.Publisher
		err        error
	)
	if c.DefaultQuery("status", "active") == "inactive" {
		publishers, err = h.queries.ListInactivePublishers(ctx)
	} else {
		publishers, err = h.queries.ListActivePublishers(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.PublisherResponse, len(publishers))
	for i, p := range publishers {
		list[i] = toPublisherResponse(p)
	}
	response.Success(c, list)
}

// Update 修改出版社名称
// @Summary      修改出版社名称
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Param        request body dto.NameRequest true "新名称"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers/{id} [put]
func (h *PublisherHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的出版社ID")
		return
	}

	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.updateUseCase.Execute(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Deactivate 注销出版社(级联注销名下图书并关闭其在借记录)
// @Summary      注销出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers/{id}/deactivate [post]
func (h *PublisherHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的出版社ID")
		return
	}

	if err := h.lifecycle.DeactivatePublisher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Activate 恢复出版社(不级联恢复图书)
// @Summary      恢复出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers/{id}/activate [post]
func (h *PublisherHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的出版社ID")
		return
	}

	if err := h.lifecycle.ActivatePublisher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除出版社(级联删除名下图书与全部借阅记录)
// @Summary      删除出版社
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/publishers/{id} [delete]
func (h *PublisherHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的出版社ID")
		return
	}

	if err := h.lifecycle.DeletePublisher(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toPublisherResponse(p *publisher.Publisher) *dto.PublisherResponse {
	return &dto.PublisherResponse{
		ID:     p.ID,
		Name:   p.Name,
		Active: p.Active,
	}
}
