package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/zhangxy/bookshop/internal/application/cart"
	"github.com/zhangxy/bookshop/internal/interface/http/dto"
	"github.com/zhangxy/bookshop/internal/interface/http/middleware"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	useCase *appcart.CartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(useCase *appcart.CartUseCase) *CartHandler {
	return &CartHandler{useCase: useCase}
}

// List 查询购物车
// @Summary      购物车列表
// @Description  返回条目与实时售价（促销价优先）
// @Tags         购物车模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Router       /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	view, err := h.useCase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, view)
}

// Add 加入购物车
// @Summary      加入购物车
// @Description  同一商品重复加购合并数量
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "商品与数量"
// @Success      200 {object} response.Response "加购成功"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.useCase.Add(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// UpdateQuantity 修改数量
// @Summary      修改购物车数量
// @Description  数量0表示移除条目
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int true "商品ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response "修改成功"
// @Router       /cart/items/{product_id} [put]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.useCase.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Remove 移除条目
// @Summary      移除购物车条目
// @Tags         购物车模块
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int true "商品ID"
// @Success      200 {object} response.Response "移除成功"
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.useCase.Remove(c.Request.Context(), userID, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
