package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/pkg/response"
)

// PhotoHandler 图片HTTP处理器
// 图片以原始字节返回(非统一JSON响应),Content-Type取存储的MIME
type PhotoHandler struct {
	getUseCase *catalog.GetPhotoUseCase
}

// NewPhotoHandler 创建图片处理器
func NewPhotoHandler(getUseCase *catalog.GetPhotoUseCase) *PhotoHandler {
	return &PhotoHandler{getUseCase: getUseCase}
}

// Get 读取图片
// @Summary      读取图片
// @Description  返回图片原始字节,用于封面/头像展示
// @Tags         图片
// @Produce      image/jpeg
// @Param        id path int true "图片ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.Response "图片不存在"
// @Router       /api/v1/photos/{id} [get]
func (h *PhotoHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图片ID")
		return
	}

	p, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	mime := p.Mime
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Data(http.StatusOK, mime, p.Content)
}
