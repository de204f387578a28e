package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/zhangxy/bookshop/internal/application/category"
	"github.com/zhangxy/bookshop/internal/interface/http/dto"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	useCase *appcategory.CategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(useCase *appcategory.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{useCase: useCase}
}

// List 分类列表（公开）
// @Summary      分类列表
// @Tags         商品模块
// @Produce      json
// @Success      200 {object} response.Response "查询成功"
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.useCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// Create 创建分类（管理端）
// @Summary      创建分类
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveCategoryRequest true "分类信息"
// @Success      200 {object} response.Response "创建成功"
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"id": created.ID})
}

// Delete 删除分类（管理端）
// @Summary      删除分类
// @Description  分类下仍有商品时拒绝删除
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
