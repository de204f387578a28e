package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, error) {
	return parseUintParam(c, "id")
}

// parseUintParam 解析路径中的无符号整数参数
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidParams, "无效的"+name)
	}
	return uint(v), nil
}
