package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "github.com/zhangxy/bookshop/internal/application/order"
	"github.com/zhangxy/bookshop/internal/interface/http/dto"
	"github.com/zhangxy/bookshop/internal/interface/http/middleware"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase     *apporder.CheckoutUseCase
	receiveUseCase      *apporder.ReceiveOrderUseCase
	cancelUseCase       *apporder.CancelOrderUseCase
	returnUseCase       *apporder.ReturnOrderUseCase
	updateStatusUseCase *apporder.UpdateStatusUseCase
	queries             *apporder.OrderQueries
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	receiveUseCase *apporder.ReceiveOrderUseCase,
	cancelUseCase *apporder.CancelOrderUseCase,
	returnUseCase *apporder.ReturnOrderUseCase,
	updateStatusUseCase *apporder.UpdateStatusUseCase,
	queries *apporder.OrderQueries,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase:     checkoutUseCase,
		receiveUseCase:      receiveUseCase,
		cancelUseCase:       cancelUseCase,
		returnUseCase:       returnUseCase,
		updateStatusUseCase: updateStatusUseCase,
		queries:             queries,
	}
}

// Checkout 购物车结算下单
// @Summary      结算下单
// @Description  整车结算：快照价格固化、悲观锁扣库存、清空购物车，单事务完成
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "收货信息"
// @Success      200 {object} response.Response "下单成功"
// @Failure      400 {object} response.Response "购物车为空或库存不足"
// @Router       /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apporder.CheckoutRequest{
		UserID:          userID,
		ShippingName:    req.ShippingName,
		ShippingPhone:   req.ShippingPhone,
		ShippingAddress: req.ShippingAddress,
		Note:            req.Note,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListMine 我的订单列表
// @Summary      我的订单
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Success      200 {object} response.Response "查询成功"
// @Router       /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	orders, total, err := h.queries.ListMine(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, orders, total, page, pageSize)
}

// Detail 订单详情
// @Summary      订单详情
// @Description  只能查询本人订单，他人订单返回404
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "查询成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) Detail(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	detail, err := h.queries.GetDetail(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Receive 确认收货
// @Summary      确认收货
// @Description  仅配送中订单；货到付款订单需管理员确认收款
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "操作成功"
// @Router       /orders/{id}/receive [post]
func (h *OrderHandler) Receive(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.receiveUseCase.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Cancel 取消订单
// @Summary      取消订单
// @Description  仅待发货订单可取消，库存原数回补
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "操作成功"
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.cancelUseCase.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Return 申请退货
// @Summary      申请退货
// @Description  仅已完成订单，下单起7天内有效；退货回补库存并扣回积分
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "操作成功"
// @Router       /orders/{id}/return [post]
func (h *OrderHandler) Return(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.returnUseCase.Execute(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// CheckPurchase 查询购买记录
// @Summary      是否已购买
// @Description  是否存在包含该商品的已完成订单（评价资格校验）
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path int true "商品ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /orders/purchased/{product_id} [get]
func (h *OrderHandler) CheckPurchase(c *gin.Context) {
	productID, err := parseUintParam(c, "product_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := middleware.GetUserID(c)
	purchased, err := h.queries.HasPurchased(c.Request.Context(), userID, productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"purchased": purchased})
}

// AdminList 管理端订单列表
// @Summary      订单列表（管理端）
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "按状态筛选"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(20)
// @Success      200 {object} response.Response "查询成功"
// @Router       /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := h.queries.ListAll(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, orders, total, page, pageSize)
}

// AdminDetail 管理端订单详情
// @Summary      订单详情（管理端）
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) AdminDetail(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.queries.GetDetailAdmin(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// AdminUpdateStatus 管理端改订单状态
// @Summary      修改订单状态（管理端）
// @Description  可设置任意合法状态；库存、积分、通知副作用由新旧状态对决定
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} response.Response "操作成功"
// @Failure      400 {object} response.Response "未知状态"
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	if err := h.updateStatusUseCase.Execute(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
