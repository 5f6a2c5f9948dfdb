package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 会员HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain和application层）
// 3. 使用依赖注入，便于测试
type MemberHandler struct {
	registerUseCase  *appmember.RegisterUseCase
	loginUseCase     *appmember.LoginUseCase
	logoutUseCase    *appmember.LogoutUseCase
	setPhotoUseCase  *appmember.SetPhotoUseCase
	setActiveUseCase *appmember.SetActiveUseCase
	queries          *appmember.Queries
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(
	registerUseCase *appmember.RegisterUseCase,
	loginUseCase *appmember.LoginUseCase,
	logoutUseCase *appmember.LogoutUseCase,
	setPhotoUseCase *appmember.SetPhotoUseCase,
	setActiveUseCase *appmember.SetActiveUseCase,
	queries *appmember.Queries,
) *MemberHandler {
	return &MemberHandler{
		registerUseCase:  registerUseCase,
		loginUseCase:     loginUseCase,
		logoutUseCase:    logoutUseCase,
		setPhotoUseCase:  setPhotoUseCase,
		setActiveUseCase: setActiveUseCase,
		queries:          queries,
	}
}

// Register 会员注册
// @Summary      会员注册
// @Description  创建新会员账号
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=dto.MemberResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已存在"
// @Router       /api/v1/members/register [post]
func (h *MemberHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appmember.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.MemberResponse{
		ID:     result.ID,
		Email:  result.Email,
		Name:   result.Name,
		Active: true,
	})
}

// Login 会员登录
// @Summary      会员登录
// @Description  验证邮箱密码，返回JWT Token
// @Tags         会员
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/members/login [post]
func (h *MemberHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appmember.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		Member: dto.MemberInfo{
			ID:    result.Member.ID,
			Email: result.Member.Email,
			Name:  result.Member.Name,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

// Logout 会员登出
// @Summary      会员登出
// @Description  删除会话并将Token加入黑名单
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Router       /api/v1/members/logout [post]
func (h *MemberHandler) Logout(c *gin.Context) {
	memberID := middleware.MustGetMemberID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), memberID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Profile 当前会员信息
// @Summary      当前会员信息
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.MemberResponse}
// @Router       /api/v1/members/me [get]
func (h *MemberHandler) Profile(c *gin.Context) {
	memberID := middleware.MustGetMemberID(c)

	m, err := h.queries.GetByID(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.MemberResponse{
		ID:     m.ID,
		Email:  m.Email,
		Name:   m.Name,
		Active: m.Active,
	})
}

// UploadPhoto 上传头像
// @Summary      上传头像
// @Description  multipart表单上传,字段名photo
// @Tags         会员
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        photo formData file true "头像文件"
// @Success      200 {object} response.Response "上传成功"
// @Router       /api/v1/members/me/photo [post]
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	memberID := middleware.MustGetMemberID(c)

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
	err = h.setPhotoUseCase.Execute(c.Request.Context(), memberID, fileHeader.Filename, mime, content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SetActive 启用/停用会员(管理操作)
// @Summary      启用或停用会员
// @Tags         会员
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "会员ID"
// @Param        request body dto.SetMemberActiveRequest true "启停标记"
// @Success      200 {object} response.Response
// @Router       /api/v1/members/{id}/active [put]
func (h *MemberHandler) SetActive(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的会员ID")
		return
	}

	var req dto.SetMemberActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	if err := h.setActiveUseCase.Execute(c.Request.Context(), id, *req.Active); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListMembers 会员列表
// @Summary      会员列表
// @Description  status=active返回启用会员,status=inactive返回停用会员
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "active | inactive" default(active)
// @Success      200 {object} response.Response{data=[]dto.MemberResponse}
// @Router       /api/v1/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		members []*member.Member
		err     error
	)
	if c.DefaultQuery("status", "active") == "inactive" {
		members, err = h.queries.ListInactive(ctx)
	} else {
		members, err = h.queries.ListActive(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	// 领域实体含密码哈希,必须转DTO再出门
	list := make([]*dto.MemberResponse, len(members))
	for i, m := range members {
		list[i] = &dto.MemberResponse{
			ID:     m.ID,
			Email:  m.Email,
			Name:   m.Name,
			Active: m.Active,
		}
	}
	response.Success(c, list)
}
