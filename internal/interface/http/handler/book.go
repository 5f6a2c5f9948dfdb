package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/application/lifecycle"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	registerUseCase *catalog.RegisterBookUseCase
	updateUseCase   *catalog.UpdateBookUseCase
	setCoverUseCase *catalog.SetBookCoverUseCase
	queries         *catalog.Queries
	lifecycle       *lifecycle.Engine
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	registerUseCase *catalog.RegisterBookUseCase,
	updateUseCase *catalog.UpdateBookUseCase,
	setCoverUseCase *catalog.SetBookCoverUseCase,
	queries *catalog.Queries,
	lifecycleEngine *lifecycle.Engine,
) *BookHandler {
	return &BookHandler{
		registerUseCase: registerUseCase,
		updateUseCase:   updateUseCase,
		setCoverUseCase: setCoverUseCase,
		queries:         queries,
		lifecycle:       lifecycleEngine,
	}
}

// Register 登记图书
// @Summary      登记图书
// @Description  作者与出版社必须已登记;ISBN不可重复
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "作者或出版社不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Register(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	b, err := h.registerUseCase.Execute(c.Request.Context(), catalog.RegisterBookRequest{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Year:        req.Year,
		Description: req.Description,
		TotalCopies: req.TotalCopies,
		AuthorID:    req.AuthorID,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(b))
}

// Get 查询图书详情(走Redis旁路缓存)
// @Summary      查询图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	b, err := h.queries.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(b))
}

// List 图书列表
// @Summary      图书列表
// @Description  status=active返回在架图书,status=inactive返回下架图书;
// @Description  author_id/publisher_id按归属方过滤(与status互斥,过滤时返回全部状态)
// @Tags         图书
// @Produce      json
// @Param        status query string false "active | inactive" default(active)
// @Param        author_id query int false "按作者过滤"
// @Param        publisher_id query int false "按出版社过滤"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		books []*book.Book
		err   error
	)

	switch {
	case c.Query("author_id") != "":
		var authorID uint
		authorID, err = parseUintQuery(c, "author_id")
		if err != nil {
			response.ErrorWithCode(c, 40900, "无效的author_id")
			return
		}
		books, err = h.queries.BooksByAuthor(ctx, authorID)
	case c.Query("publisher_id") != "":
		var publisherID uint
		publisherID, err = parseUintQuery(c, "publisher_id")
		if err != nil {
			response.ErrorWithCode(c, 40900, "无效的publisher_id")
			return
		}
		books, err = h.queries.BooksByPublisher(ctx, publisherID)
	case c.DefaultQuery("status", "active") == "inactive":
		books, err = h.queries.ListInactiveBooks(ctx)
	default:
		books, err = h.queries.ListActiveBooks(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	response.Success(c, list)
}

// Update 修改图书
// @Summary      修改图书
// @Description  副本总数调整以当前在借数为下限
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	err = h.updateUseCase.Execute(c.Request.Context(), catalog.UpdateBookRequest{
		BookID:      id,
		ISBN:        req.ISBN,
		Title:       req.Title,
		Year:        req.Year,
		Description: req.Description,
		TotalCopies: req.TotalCopies,
		AuthorID:    req.AuthorID,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UploadCover 上传图书封面
// @Summary      上传图书封面
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        photo formData file true "封面文件"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id}/cover [post]
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.ErrorWithCode(c, 40900, "缺少photo文件字段")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ErrorWithCode(c, 40900, "读取上传文件失败")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.ErrorWithCode(c, 40900, "读取上传文件失败")
		return
	}

	mime := fileHeader.Header.Get("Content-Type")
	err = h.setCoverUseCase.Execute(c.Request.Context(), id, fileHeader.Filename, mime, content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Deactivate 下架图书(关闭在借记录并释放副本)
// @Summary      下架图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id}/deactivate [post]
func (h *BookHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	if err := h.lifecycle.DeactivateBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Activate 恢复图书(归属的作者/出版社若已注销将一并恢复)
// @Summary      恢复图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id}/activate [post]
func (h *BookHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	if err := h.lifecycle.ActivateBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除图书(级联删除全部借阅记录)
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	if err := h.lifecycle.DeleteBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toBookResponse(b *book.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Year:            b.Year,
		Description:     b.Description,
		TotalCopies:     b.TotalCopies,
		LentCopies:      b.LentCopies,
		AvailableCopies: b.AvailableCopies,
		Active:          b.Active,
		AuthorID:        b.AuthorID,
		PublisherID:     b.PublisherID,
		CoverPhotoID:    b.CoverPhotoID,
	}
}
