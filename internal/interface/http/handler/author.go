package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/application/lifecycle"
	"github.com/xiebiao/library/internal/domain/author"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	registerUseCase *catalog.RegisterAuthorUseCase
	updateUseCase   *catalog.UpdateAuthorUseCase
	queries         *catalog.Queries
	lifecycle       *lifecycle.Engine
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	registerUseCase *catalog.RegisterAuthorUseCase,
	updateUseCase *catalog.UpdateAuthorUseCase,
	queries *catalog.Queries,
	lifecycleEngine *lifecycle.Engine,
) *AuthorHandler {
	return &AuthorHandler{
		registerUseCase: registerUseCase,
		updateUseCase:   updateUseCase,
		queries:         queries,
		lifecycle:       lifecycleEngine,
	}
}

// Register 登记作者
// @Summary      登记作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.NameRequest true "作者信息"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Register(c *gin.Context) {
	var req dto.NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	a, err := h.registerUseCase.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(a))
}

// Get 查询作者
// @Summary      查询作者
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的作者ID")
		return
	}

	a, err := h.queries.GetAuthor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAuthorResponse(a))
}

// List 作者列表
// @Summary      作者列表
// @Description  status=active返回在册作者,status=inactive返回注销作者
// @Tags         作者
// @Produce      json
// @Param        status query string false "active | inactive" default(active)
// @Success      200 {object} response.Response{data=[]dto.AuthorResponse}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		authors []*author.Author
		err     error
	)
	if c.DefaultQuery("status", "active") == "inactive" {
		authors, err = h.queries.ListInactiveAuthors(ctx)
	} else {
		authors, err = h.queries.ListActiveAuthors(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.AuthorResponse, len(authors))
	for i, a := range authors {
		list[i] = toAuthorResponse(a)
	}
	response.Success(c, list)
}

// Update 修改作者姓名
// @Summary      修改作者姓名
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.NameRequest true "新姓名"
// @Success      200 {object} response.Response
// @Router       /api/v1/authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的作者ID")
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

// Deactivate 注销作者(级联注销名下图书并关闭其在借记录)
// @Summary      注销作者
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/authors/{id}/deactivate [post]
func (h *AuthorHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的作者ID")
		return
	}

	if err := h.lifecycle.DeactivateAuthor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Activate 恢复作者(不级联恢复图书)
// @Summary      恢复作者
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/authors/{id}/activate [post]
func (h *AuthorHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的作者ID")
		return
	}

	if err := h.lifecycle.ActivateAuthor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除作者(级联删除名下图书与全部借阅记录)
// @Summary      删除作者
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的作者ID")
		return
	}

	if err := h.lifecycle.DeleteAuthor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toAuthorResponse(a *author.Author) *dto.AuthorResponse {
	return &dto.AuthorResponse{
		ID:     a.ID,
		Name:   a.Name,
		Active: a.Active,
	}
}
