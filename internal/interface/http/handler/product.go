package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appproduct "github.com/zhangxy/bookshop/internal/application/product"
	"github.com/zhangxy/bookshop/internal/interface/http/dto"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/response"
)

// ProductHandler 商品HTTP处理器
// 公开接口（列表/详情）与管理端CRUD共用一个处理器，
// 权限差异由路由分组上的中间件决定
type ProductHandler struct {
	listUseCase   *appproduct.ListProductsUseCase
	getUseCase    *appproduct.GetProductUseCase
	manageUseCase *appproduct.ManageProductUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	listUseCase *appproduct.ListProductsUseCase,
	getUseCase *appproduct.GetProductUseCase,
	manageUseCase *appproduct.ManageProductUseCase,
) *ProductHandler {
	return &ProductHandler{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		manageUseCase: manageUseCase,
	}
}

// List 商品列表
// @Summary      商品列表
// @Description  分页查询，支持分类过滤、关键词搜索、价格排序
// @Tags         商品模块
// @Produce      json
// @Param        category_id query int false "分类ID"
// @Param        keyword query string false "按书名/作者搜索"
// @Param        sort query string false "price_asc | price_desc"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(20)
// @Success      200 {object} response.Response "查询成功"
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	items, total, err := h.listUseCase.Execute(c.Request.Context(), appproduct.ListRequest{
		CategoryID: uint(categoryID),
		Keyword:    c.Query("keyword"),
		SortBy:     c.Query("sort"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, items, total, page, pageSize)
}

// Get 商品详情
// @Summary      商品详情
// @Tags         商品模块
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Create 创建商品（管理端）
// @Summary      创建商品
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveProductRequest true "商品信息"
// @Success      200 {object} response.Response "创建成功"
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	p, err := h.manageUseCase.Create(c.Request.Context(), toSaveRequest(req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"id": p.ID})
}

// Update 更新商品（管理端）
// @Summary      更新商品
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.SaveProductRequest true "商品信息"
// @Success      200 {object} response.Response "更新成功"
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.manageUseCase.Update(c.Request.Context(), id, toSaveRequest(req)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Delete 下架商品（管理端，软删除）
// @Summary      下架商品
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Restock 补货（管理端）
// @Summary      补货
// @Description  正增量进库存账本
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.RestockRequest true "补货数量"
// @Success      200 {object} response.Response "补货成功"
// @Router       /admin/products/{id}/restock [post]
func (h *ProductHandler) Restock(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.manageUseCase.Restock(c.Request.Context(), id, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// toSaveRequest HTTP DTO → 应用层DTO
func toSaveRequest(req dto.SaveProductRequest) appproduct.SaveProductRequest {
	return appproduct.SaveProductRequest{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Author:          req.Author,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Price:           req.Price,
		SalePrice:       req.SalePrice,
		Stock:           req.Stock,
		Images:          req.Images,
		Description:     req.Description,
		Specs:           req.Specs,
	}
}
