package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	createUseCase *apploan.CreateLoanUseCase
	renewUseCase  *apploan.RenewLoanUseCase
	returnUseCase *apploan.ReturnLoanUseCase
	deleteUseCase *apploan.DeleteLoanUseCase
	queries       *apploan.Queries
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	createUseCase *apploan.CreateLoanUseCase,
	renewUseCase *apploan.RenewLoanUseCase,
	returnUseCase *apploan.ReturnLoanUseCase,
	deleteUseCase *apploan.DeleteLoanUseCase,
	queries *apploan.Queries,
) *LoanHandler {
	return &LoanHandler{
		createUseCase: createUseCase,
		renewUseCase:  renewUseCase,
		returnUseCase: returnUseCase,
		deleteUseCase: deleteUseCase,
		queries:       queries,
	}
}

// Create 创建借阅
// @Summary      创建借阅
// @Description  校验会员借阅上限(4笔)与图书可借副本,任一不满足则拒绝
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateLoanRequest true "借阅信息"
// @Success      200 {object} response.Response{data=apploan.CreateLoanResponse}
// @Failure      400 {object} response.Response "日期非法/无可借副本/超出上限"
// @Failure      404 {object} response.Response "图书或会员不存在"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apploan.CreateLoanRequest{
		MemberID: req.MemberID,
		BookID:   req.BookID,
		LoanDate: req.LoanDate,
		DueDate:  req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 查询借阅记录
// @Summary      查询借阅记录
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅ID")
		return
	}

	l, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toLoanResponse(l))
}

// List 借阅列表
// @Summary      借阅列表
// @Description  status=active返回在借记录,status=inactive返回已归还记录;
// @Description  member_id/book_id按会员或图书过滤
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "active | inactive" default(active)
// @Param        member_id query int false "按会员过滤"
// @Param        book_id query int false "按图书过滤"
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		loans []*loan.Loan
		err   error
	)

	switch {
	case c.Query("member_id") != "":
		var memberID uint
		memberID, err = parseUintQuery(c, "member_id")
		if err != nil {
			response.ErrorWithCode(c, 40900, "无效的member_id")
			return
		}
		loans, err = h.queries.ListByMember(ctx, memberID)
	case c.Query("book_id") != "":
		var bookID uint
		bookID, err = parseUintQuery(c, "book_id")
		if err != nil {
			response.ErrorWithCode(c, 40900, "无效的book_id")
			return
		}
		loans, err = h.queries.ListByBook(ctx, bookID)
	case c.DefaultQuery("status", "active") == "inactive":
		loans, err = h.queries.ListInactive(ctx)
	default:
		loans, err = h.queries.ListActive(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.LoanResponse, len(loans))
	for i, l := range loans {
		list[i] = toLoanResponse(l)
	}
	response.Success(c, list)
}

// Renew 续借
// @Summary      续借
// @Description  更新借出/应还日期,已归还的记录不可续借
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Param        request body dto.RenewLoanRequest true "新的借阅日期"
// @Success      200 {object} response.Response
// @Router       /api/v1/loans/{id}/renew [post]
func (h *LoanHandler) Renew(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅ID")
		return
	}

	var req dto.RenewLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	err = h.renewUseCase.Execute(c.Request.Context(), apploan.RenewLoanRequest{
		LoanID:   id,
		LoanDate: req.LoanDate,
		DueDate:  req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Return 归还
// @Summary      归还
// @Description  关闭借阅记录并释放图书副本
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "记录已归还"
// @Router       /api/v1/loans/{id}/return [post]
func (h *LoanHandler) Return(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅ID")
		return
	}

	if err := h.returnUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 删除借阅记录
// @Summary      删除借阅记录
// @Description  在借记录先释放副本再删除,已归还记录直接删除
// @Tags         借阅
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/loans/{id} [delete]
func (h *LoanHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的借阅ID")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toLoanResponse(l *loan.Loan) *dto.LoanResponse {
	return &dto.LoanResponse{
		ID:         l.ID,
		LoanNo:     l.LoanNo,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
		Active:     l.Active,
	}
}
