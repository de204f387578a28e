package handler

import (
	"github.com/gin-gonic/gin"

	appadmin "github.com/zhangxy/bookshop/internal/application/admin"
	"github.com/zhangxy/bookshop/internal/domain/setting"
	"github.com/zhangxy/bookshop/internal/interface/http/dto"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/response"
)

// AdminHandler 管理后台HTTP处理器（概览/用户/配置）
type AdminHandler struct {
	analyticsUseCase *appadmin.AnalyticsUseCase
	listUsersUseCase *appadmin.ListUsersUseCase
	settingsUseCase  *appadmin.SettingsUseCase
}

// NewAdminHandler 创建管理后台处理器
func NewAdminHandler(
	analyticsUseCase *appadmin.AnalyticsUseCase,
	listUsersUseCase *appadmin.ListUsersUseCase,
	settingsUseCase *appadmin.SettingsUseCase,
) *AdminHandler {
	return &AdminHandler{
		analyticsUseCase: analyticsUseCase,
		listUsersUseCase: listUsersUseCase,
		settingsUseCase:  settingsUseCase,
	}
}

// Overview 经营概览
// @Summary      经营概览
// @Description  用户数、订单数、营收（仅已完成订单）、状态分布、热销商品
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Router       /admin/analytics [get]
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}

// ListUsers 用户列表
// @Summary      用户列表（管理端）
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.listUsersUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// GetSettings 查询站点配置
// @Summary      站点配置
// @Tags         管理后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "查询成功"
// @Router       /admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 写入站点配置
// @Summary      修改站点配置
// @Description  仅白名单内的配置键可写
// @Tags         管理后台
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateSettingsRequest true "配置项"
// @Success      200 {object} response.Response "保存成功"
// @Router       /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	settings := make([]setting.Setting, len(req.Settings))
	for i, item := range req.Settings {
		settings[i] = setting.Setting{Key: item.Key, Value: item.Value}
	}

	if err := h.settingsUseCase.Update(c.Request.Context(), settings); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetPaymentConfig 查询支付与联系信息（公开接口）
// @Summary      支付配置
// @Description  下单页展示的银行转账信息与站点联系方式，无需登录
// @Tags         站点配置
// @Produce      json
// @Success      200 {object} response.Response "查询成功"
// @Router       /payment-config [get]
func (h *AdminHandler) GetPaymentConfig(c *gin.Context) {
	config, err := h.settingsUseCase.PaymentConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, config)
}
